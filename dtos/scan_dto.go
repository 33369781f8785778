// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dtos

import "github.com/google/uuid"

type ScanRequest struct {
	ContentKind string      `json:"contentKind" validate:"required,max=128"`
	ContentID   string      `json:"contentId" validate:"required,max=256"`
	Text        string      `json:"text"`
	FieldName   string      `json:"fieldName,omitempty"`
	OwnerID     string      `json:"ownerId" validate:"required"`
	Trigger     ScanTrigger `json:"trigger" validate:"omitempty,oneof=manual automatic bulk scheduled"`
}

type ScanAcceptedResponse struct {
	IdempotencyKey string `json:"idempotencyKey"`
	Queued         bool   `json:"queued"`
}

type ResolveViolationRequest struct {
	Kind  ResolutionKind `json:"kind" validate:"required,oneof=acknowledged modified false-positive approved-exception removed"`
	Notes string         `json:"notes"`
}

type ReviewDecisionRequest struct {
	Notes string `json:"notes"`
}

type RequireUserActionRequest struct {
	Required UserActionKind `json:"required" validate:"required,oneof=modify-content remove-content acknowledge justify"`
	Notes    string         `json:"notes"`
}

type BulkApproveRequest struct {
	ActionIDs []uuid.UUID `json:"actionIds" validate:"required,min=1,max=500"`
	Notes     string      `json:"notes"`
}

type ExtendExpiryRequest struct {
	Days int `json:"days" validate:"required,min=1,max=365"`
}

// BulkItemResult reports the outcome for one id of a bulk operation.
type BulkItemResult struct {
	ID      uuid.UUID `json:"id"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

type ReviewQueueFilter struct {
	MinPriority *float64
	RiskLevel   *RiskLevel
}
