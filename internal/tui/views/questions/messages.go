package questions

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/qaeval/internal/core/question"
)

// Service is the subset of the API client the table needs.
type Service interface {
	ListQuestions(ctx context.Context, page int, filter question.Filter) (question.Page, error)
	GetQuestion(ctx context.Context, id int) (question.Detail, error)
	ListCategories(ctx context.Context) ([]question.Category, error)
	UpdateQuestion(ctx context.Context, id int, p question.Patch) (question.Update, error)
}

type pageLoadedMsg struct {
	req  Request
	page question.Page
	err  error
}

type categoriesLoadedMsg struct {
	categories []question.Category
	err        error
}

type mutationDoneMsg struct {
	id     int
	patch  question.Patch
	update question.Update
	err    error
}

// textField selects which text of a question the viewer shows.
type textField int

const (
	fieldQuestion textField = iota
	fieldAnswer
)

// detailLoadedMsg carries the Seq of the page request that was current when
// the detail was asked for.
type detailLoadedMsg struct {
	id     int
	seq    uint64
	field  textField
	detail question.Detail
	err    error
}

func loadPage(svc Service, req Request) tea.Cmd {
	return func() tea.Msg {
		page, err := svc.ListQuestions(context.Background(), req.Page, req.Filter)
		return pageLoadedMsg{req: req, page: page, err: err}
	}
}

func loadCategories(svc Service) tea.Cmd {
	return func() tea.Msg {
		cats, err := svc.ListCategories(context.Background())
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

func updateQuestion(svc Service, id int, p question.Patch) tea.Cmd {
	return func() tea.Msg {
		u, err := svc.UpdateQuestion(context.Background(), id, p)
		return mutationDoneMsg{id: id, patch: p, update: u, err: err}
	}
}

func loadDetail(svc Service, id int, seq uint64, field textField) tea.Cmd {
	return func() tea.Msg {
		d, err := svc.GetQuestion(context.Background(), id)
		return detailLoadedMsg{id: id, seq: seq, field: field, detail: d, err: err}
	}
}
