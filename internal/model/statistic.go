package model

type GetAnalyticsRequest struct{}

type GetAnalyticsResponse Analytics

type GetReconciliationsRequest struct {
	Limit int `json:"limit" validate:"min=0,max=500"`
}

type GetReconciliationsResponse struct {
	Reconciliations []Reconciliation `json:"reconciliations"`
}

type ResolveReconciliationRequest struct {
	ID string `json:"id" validate:"required"`
}

type ResolveReconciliationResponse struct{}
