package mcp

import (
	"context"
	"fmt"

	"produce-mcp/internal/catalog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type DealsListInput struct {
	Status string `json:"status,omitempty" jsonschema:"only deals in this status"`
}

type DealsListOutput struct {
	Count int       `json:"count"`
	Deals []DealDTO `json:"deals"`
}

type DealInput struct {
	ID                string `json:"id,omitempty" jsonschema:"omit to create a new deal"`
	CompanyName       string `json:"company_name"`
	ContactPerson     string `json:"contact_person,omitempty"`
	ProductName       string `json:"product_name"`
	ExpectedAmount    string `json:"expected_amount" jsonschema:"decimal yen amount, e.g. 250000"`
	Status            string `json:"status" jsonschema:"引合, 商談中, 提案済, 成約 or 失注"`
	Probability       int    `json:"probability" jsonschema:"win probability in percent, 0-100"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty" jsonschema:"YYYY-MM-DD"`
	Notes             string `json:"notes,omitempty"`
}

type StageCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type PipelineOutput struct {
	Stages   []StageCount `json:"stages"`
	Total    string       `json:"total_amount"`
	Weighted string       `json:"weighted_amount"`
	Won      string       `json:"won_amount"`
}

func (s *Server) handleDealsList(ctx context.Context, req *sdk.CallToolRequest, in DealsListInput) (*sdk.CallToolResult, DealsListOutput, error) {
	if in.Status != "" && !catalog.DealStatus(in.Status).Valid() {
		return nil, DealsListOutput{}, fmt.Errorf("unknown deal status %q", in.Status)
	}

	out := DealsListOutput{Deals: make([]DealDTO, 0)}
	for _, d := range s.catalog.Deals() {
		if in.Status != "" && string(d.Status) != in.Status {
			continue
		}
		out.Deals = append(out.Deals, toDealDTO(d))
	}
	out.Count = len(out.Deals)
	return nil, out, nil
}

func (s *Server) handleDealsUpsert(ctx context.Context, req *sdk.CallToolRequest, in DealInput) (*sdk.CallToolResult, DealDTO, error) {
	amount, err := parseAmount("expected_amount", in.ExpectedAmount)
	if err != nil {
		return nil, DealDTO{}, err
	}

	d, err := s.catalog.UpsertDeal(catalog.Deal{
		ID:                in.ID,
		CompanyName:       in.CompanyName,
		ContactPerson:     in.ContactPerson,
		ProductName:       in.ProductName,
		ExpectedAmount:    amount,
		Status:            catalog.DealStatus(in.Status),
		Probability:       in.Probability,
		ExpectedCloseDate: in.ExpectedCloseDate,
		Notes:             in.Notes,
	})
	if err != nil {
		return nil, DealDTO{}, err
	}
	return nil, toDealDTO(d), nil
}

func (s *Server) handleDealsPipeline(ctx context.Context, req *sdk.CallToolRequest, _ struct{}) (*sdk.CallToolResult, PipelineOutput, error) {
	p := s.catalog.Pipeline()

	out := PipelineOutput{
		Stages:   make([]StageCount, 0, len(catalog.DealStatuses())),
		Total:    p.Total.String(),
		Weighted: p.Weighted.String(),
		Won:      p.Won.String(),
	}
	for _, status := range catalog.DealStatuses() {
		out.Stages = append(out.Stages, StageCount{Status: string(status), Count: p.Counts[status]})
	}
	return nil, out, nil
}
