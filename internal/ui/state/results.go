package state

import (
	"github.com/google/uuid"

	"farmdir/internal/domain"
)

// Phase is the accumulator's state machine position
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoadingMore
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoadingMore:
		return "loading-more"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Request tags one search call. A completion is only applied when its tag
// matches the request currently in flight.
type Request struct {
	ID         string
	Generation int
	Page       int
	Criteria   domain.Criteria
}

// IsReset reports whether the request replaces the result list
func (r Request) IsReset() bool {
	return r.Page == 1
}

// Event is an input to Results.Apply
type Event interface {
	isResultsEvent()
}

// ResetRequested starts a new search session for Criteria
type ResetRequested struct {
	Criteria domain.Criteria
}

// LoadMoreRequested asks for the page after the current one
type LoadMoreRequested struct{}

// RetryRequested re-issues the last failed request
type RetryRequested struct{}

// PageLoaded delivers the result of Request
type PageLoaded struct {
	Request Request
	Page    domain.SearchPage
}

// PageFailed delivers the failure of Request
type PageFailed struct {
	Request Request
	Err     error
}

func (ResetRequested) isResultsEvent()    {}
func (LoadMoreRequested) isResultsEvent() {}
func (RetryRequested) isResultsEvent()    {}
func (PageLoaded) isResultsEvent()        {}
func (PageFailed) isResultsEvent()        {}

// Results accumulates farms across the pages of one search session.
// All mutation goes through Apply.
type Results struct {
	Farms       []domain.Farm
	Pagination  domain.Pagination
	CurrentPage int
	HasNextPage bool
	Phase       Phase
	LastError   string
	Criteria    domain.Criteria

	generation int
	inFlight   *Request
	failed     *Request

	// StaleDropped counts completions discarded because they were superseded
	StaleDropped int
}

// NewResults creates an idle accumulator
func NewResults() *Results {
	return &Results{Phase: PhaseIdle}
}

// LoadingInitial reports whether a reset fetch is in flight
func (r *Results) LoadingInitial() bool { return r.Phase == PhaseLoading }

// LoadingMore reports whether an incremental fetch is in flight
func (r *Results) LoadingMore() bool { return r.Phase == PhaseLoadingMore }

// InFlight returns the pending request, if any
func (r *Results) InFlight() (Request, bool) {
	if r.inFlight == nil {
		return Request{}, false
	}
	return *r.inFlight, true
}

// CanRetry reports whether RetryRequested would issue a request
func (r *Results) CanRetry() bool {
	return r.Phase == PhaseError && r.failed != nil && r.inFlight == nil
}

// CanLoadMore reports whether LoadMoreRequested would issue a request
func (r *Results) CanLoadMore() bool {
	return r.HasNextPage && r.inFlight == nil && r.Phase == PhaseLoaded
}

// Apply runs one state transition. It returns the request the caller must
// dispatch, or nil when the event needs no network call.
func (r *Results) Apply(ev Event) *Request {
	switch e := ev.(type) {
	case ResetRequested:
		return r.reset(e.Criteria)
	case LoadMoreRequested:
		return r.loadMore()
	case RetryRequested:
		return r.retry()
	case PageLoaded:
		r.pageLoaded(e)
	case PageFailed:
		r.pageFailed(e)
	}
	return nil
}

func (r *Results) reset(criteria domain.Criteria) *Request {
	r.generation++
	r.Criteria = criteria.Clone()
	r.Farms = nil
	r.Pagination = domain.Pagination{}
	r.CurrentPage = 1
	r.HasNextPage = true
	r.LastError = ""
	r.failed = nil
	r.Phase = PhaseLoading
	return r.issue(1)
}

func (r *Results) loadMore() *Request {
	if !r.CanLoadMore() {
		return nil
	}
	r.Phase = PhaseLoadingMore
	return r.issue(r.CurrentPage + 1)
}

func (r *Results) retry() *Request {
	if !r.CanRetry() {
		return nil
	}
	page := r.failed.Page
	r.failed = nil
	r.LastError = ""
	if page == 1 {
		r.Phase = PhaseLoading
	} else {
		r.Phase = PhaseLoadingMore
	}
	return r.issue(page)
}

func (r *Results) issue(page int) *Request {
	req := &Request{
		ID:         uuid.NewString(),
		Generation: r.generation,
		Page:       page,
		Criteria:   r.Criteria.Clone(),
	}
	r.inFlight = req
	out := *req
	return &out
}

func (r *Results) current(req Request) bool {
	return r.inFlight != nil && r.inFlight.ID == req.ID && r.inFlight.Generation == r.generation
}

func (r *Results) pageLoaded(e PageLoaded) {
	if !r.current(e.Request) {
		r.StaleDropped++
		return
	}
	r.inFlight = nil

	if e.Request.IsReset() {
		r.Farms = append([]domain.Farm(nil), e.Page.Farms...)
	} else {
		r.Farms = append(r.Farms, e.Page.Farms...)
	}
	r.Pagination = e.Page.Pagination
	r.CurrentPage = e.Page.Pagination.CurrentPage
	if r.CurrentPage < 1 {
		r.CurrentPage = e.Request.Page
	}
	r.HasNextPage = r.CurrentPage < e.Page.Pagination.TotalPages && len(e.Page.Farms) > 0
	r.Phase = PhaseLoaded
}

func (r *Results) pageFailed(e PageFailed) {
	if !r.current(e.Request) {
		r.StaleDropped++
		return
	}
	r.inFlight = nil

	if e.Err != nil {
		r.LastError = e.Err.Error()
	} else {
		r.LastError = "unknown error"
	}
	if e.Request.IsReset() {
		r.Farms = nil
	}
	failed := e.Request
	r.failed = &failed
	r.Phase = PhaseError
}

// EndOfResults reports whether the list is complete and nothing is pending
func (r *Results) EndOfResults() bool {
	return r.Phase == PhaseLoaded && !r.HasNextPage
}
