package models

import (
	"strconv"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// Request модели

// CreatePCRequest запрос на добавление ПК
type CreatePCRequest struct {
	PCNumber  string
	RowNumber int
	Status    *string // по умолчанию active
}

// UpdatePCRequest частичное обновление ПК
type UpdatePCRequest struct {
	PCNumber  *string
	RowNumber *int
	Status    *string
}

// IsEmpty возвращает true, если не задано ни одно поле
func (r *UpdatePCRequest) IsEmpty() bool {
	return r.PCNumber == nil && r.RowNumber == nil && r.Status == nil
}

// Response модели

// PCResponse данные ПК
type PCResponse struct {
	ID        int64     `json:"id"`
	PCNumber  string    `json:"pcNumber"`
	RowNumber int       `json:"rowNumber"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PCListResponse список ПК
type PCListResponse struct {
	PCs   []PCResponse `json:"pcs"`
	Count int          `json:"count"`
}

// PCRowsResponse ПК, сгруппированные по рядам ("1": [...], "2": [...])
type PCRowsResponse struct {
	Rows map[string][]PCResponse `json:"rows"`
}

// ClearAllResponse результат очистки реестра
type ClearAllResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Методы конвертации

// FromDomainPC конвертирует domain модель в DTO
func FromDomainPC(pc *domain.PC) *PCResponse {
	if pc == nil {
		return nil
	}
	return &PCResponse{
		ID:        pc.ID,
		PCNumber:  pc.PCNumber,
		RowNumber: pc.RowNumber,
		Status:    string(pc.Status),
		CreatedAt: pc.CreatedAt,
		UpdatedAt: pc.UpdatedAt,
	}
}

// FromDomainPCList конвертирует список ПК
func FromDomainPCList(pcs []*domain.PC) *PCListResponse {
	resp := &PCListResponse{PCs: make([]PCResponse, 0, len(pcs))}
	for _, pc := range pcs {
		resp.PCs = append(resp.PCs, *FromDomainPC(pc))
	}
	resp.Count = len(resp.PCs)
	return resp
}

// FromDomainRows конвертирует группировку по рядам
func FromDomainRows(rows map[int][]*domain.PC) *PCRowsResponse {
	resp := &PCRowsResponse{Rows: make(map[string][]PCResponse, len(rows))}
	for row, pcs := range rows {
		list := make([]PCResponse, 0, len(pcs))
		for _, pc := range pcs {
			list = append(list, *FromDomainPC(pc))
		}
		resp.Rows[strconv.Itoa(row)] = list
	}
	return resp
}
