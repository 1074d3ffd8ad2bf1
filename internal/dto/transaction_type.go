package dto

import (
	"github.com/zivabsuite/contable/internal/core/domain"
)

// CreateTransactionTypeRequest defines the data needed to create a folio series.
type CreateTransactionTypeRequest struct {
	Code               string `json:"code" binding:"required"`
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description"`
	Prefix             string `json:"prefix"`
	Suffix             string `json:"suffix"`
	NumberLength       int    `json:"numberLength" binding:"required,min=1,max=10"`
	RequiresValidation bool   `json:"requiresValidation"`
	AllowsEditing      bool   `json:"allowsEditing"`
}

// UpdateTransactionTypeRequest defines the data allowed for updating a folio series.
type UpdateTransactionTypeRequest struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	RequiresValidation *bool   `json:"requiresValidation"`
	AllowsEditing      *bool   `json:"allowsEditing"`
	IsActive           *bool   `json:"isActive"`
}

// TransactionTypeResponse defines the data returned for a folio series.
type TransactionTypeResponse struct {
	TransactionTypeID  string `json:"transactionTypeID"`
	CompanyID          string `json:"companyID"`
	Code               string `json:"code"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	Prefix             string `json:"prefix,omitempty"`
	Suffix             string `json:"suffix,omitempty"`
	NumberLength       int    `json:"numberLength"`
	LastFolio          int    `json:"lastFolio"`
	RequiresValidation bool   `json:"requiresValidation"`
	AllowsEditing      bool   `json:"allowsEditing"`
	IsActive           bool   `json:"isActive"`
}

// ToTransactionTypeResponse converts a domain.TransactionType to DTO.
func ToTransactionTypeResponse(tt *domain.TransactionType) TransactionTypeResponse {
	return TransactionTypeResponse{
		TransactionTypeID:  tt.TransactionTypeID,
		CompanyID:          tt.CompanyID,
		Code:               tt.Code,
		Name:               tt.Name,
		Description:        tt.Description,
		Prefix:             tt.Prefix,
		Suffix:             tt.Suffix,
		NumberLength:       tt.NumberLength,
		LastFolio:          tt.LastFolio,
		RequiresValidation: tt.RequiresValidation,
		AllowsEditing:      tt.AllowsEditing,
		IsActive:           tt.IsActive,
	}
}

// ToListTransactionTypesResponse converts a slice of domain.TransactionType to DTOs.
func ToListTransactionTypesResponse(tts []domain.TransactionType) []TransactionTypeResponse {
	res := make([]TransactionTypeResponse, len(tts))
	for i, tt := range tts {
		res[i] = ToTransactionTypeResponse(&tt)
	}
	return res
}
