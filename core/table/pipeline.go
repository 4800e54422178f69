package table

import (
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asaidimu/go-datagrid/core/record"
	"github.com/asaidimu/go-datagrid/core/rules"
)

// Options configures a pipeline.
type Options struct {
	QueryField    string   // criteria key holding the search query
	SearchFields  []string // record fields scanned by the search stage
	CaseSensitive bool     // search case sensitivity
	WindowWidth   int      // pagination window width, 0 selects the default
	Catalog       *rules.Catalog
	ExtraRules    []rules.Rule // ad-hoc rules appended to the filter chain
	Logger        *zap.Logger
}

// Result is one rendered page handed to the rendering collaborators.
type Result struct {
	Rows   []record.Record
	Window Window
	PassID string
}

// Pipeline owns the view state and threads the full dataset through the
// four stages in fixed order on every render: search, then filter, then
// sort, then paginate. The order is a deliberate contract; pagination must
// see post-sort, post-filter, post-search counts so page bounds reflect
// the visible subset rather than the raw dataset.
type Pipeline struct {
	data []record.Record
	view ViewState

	queryField string
	search     *SearchStage
	filter     *FilterStage
	sort       *SortStage
	paginate   *PaginateStage

	bus           *events.TypedEventBus[TableEvent]
	subscriptions map[string]*SubscriptionInfo
	subMu         sync.RWMutex

	logger *zap.Logger
}

// New creates a pipeline over the dataset with the given initial view
// state. A nil catalog selects the built-in rule catalog; a nil logger
// disables logging.
func New(data []record.Record, view ViewState, opts Options) (*Pipeline, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = rules.NewCatalog(logger)
	}
	if opts.QueryField == "" {
		return nil, fmt.Errorf("pipeline requires a query field name")
	}

	search, err := NewSearchStage(catalog, rules.SearchConfig{
		QueryField:    opts.QueryField,
		Fields:        opts.SearchFields,
		CaseSensitive: opts.CaseSensitive,
	})
	if err != nil {
		return nil, err
	}
	filter, err := NewFilterStage(catalog, opts.ExtraRules...)
	if err != nil {
		return nil, err
	}

	bus, err := events.NewTypedEventBus[TableEvent](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}

	if view.Page.Current < 1 {
		view.Page.Current = 1
	}

	return &Pipeline{
		data:          data,
		view:          view,
		queryField:    opts.QueryField,
		search:        search,
		filter:        filter,
		sort:          NewSortStage(),
		paginate:      NewPaginateStage(opts.WindowWidth),
		bus:           bus,
		subscriptions: map[string]*SubscriptionInfo{},
		logger:        logger,
	}, nil
}

// View returns the current view state.
func (p *Pipeline) View() ViewState {
	return p.view
}

// SetView replaces the view state ahead of the next render, mirroring a
// fresh read of the form fields.
func (p *Pipeline) SetView(view ViewState) {
	if view.Page.Current < 1 {
		view.Page.Current = 1
	}
	p.view = view
}

// SortOrder reports the current order for a column, for header rendering.
func (p *Pipeline) SortOrder(field string) SortOrder {
	return p.sort.Order(field)
}

// Render reconstructs a fresh criteria snapshot from the view state and
// applies the four stages in order over a copy of the full dataset.
func (p *Pipeline) Render(action Action) (*Result, error) {
	passID := uuid.New().String()
	started := time.Now()
	criteria := p.snapshot(action)

	p.emit(TableEvent{
		Type:      RenderStart,
		Timestamp: started.UnixMilli(),
		PassID:    passID,
		Action:    action,
		Criteria:  criteria,
	})

	result, err := p.run(passID, criteria, action)
	duration := time.Since(started).Milliseconds()

	if err != nil {
		errStr := err.Error()
		p.emit(TableEvent{
			Type:      RenderFailed,
			Timestamp: time.Now().UnixMilli(),
			PassID:    passID,
			Action:    action,
			Criteria:  criteria,
			Error:     &errStr,
			Duration:  &duration,
		})
		return nil, err
	}

	p.emit(TableEvent{
		Type:      RenderSuccess,
		Timestamp: time.Now().UnixMilli(),
		PassID:    passID,
		Action:    action,
		Criteria:  criteria,
		Rows:      len(result.Rows),
		Window:    &result.Window,
		Duration:  &duration,
	})
	return result, nil
}

func (p *Pipeline) run(passID string, criteria record.Criteria, action Action) (*Result, error) {
	rows := record.CloneAll(p.data)

	rows, err := p.search.Apply(rows, criteria)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Rows remaining after search", zap.String("pass", passID), zap.Int("count", len(rows)))

	rows, err = p.filter.Apply(rows, criteria)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Rows remaining after filter", zap.String("pass", passID), zap.Int("count", len(rows)))

	prevField, prevOrder := p.sort.Active()
	rows = p.sort.Apply(rows, action)
	if field, order := p.sort.Active(); field != prevField || order != prevOrder {
		p.emit(TableEvent{
			Type:      SortChanged,
			Timestamp: time.Now().UnixMilli(),
			PassID:    passID,
			Action:    action,
		})
	}

	page, window, err := p.paginate.Apply(rows, p.view.Page, action)
	if err != nil {
		return nil, err
	}
	if window.Page != p.view.Page.Current {
		p.view.Page.Current = window.Page
		p.emit(TableEvent{
			Type:      PageChanged,
			Timestamp: time.Now().UnixMilli(),
			PassID:    passID,
			Action:    action,
			Window:    &window,
		})
	}

	return &Result{Rows: page, Window: window, PassID: passID}, nil
}

// snapshot rebuilds the criteria object from the current view state: raw
// per-field filters, the search query under the query field, and each
// bound pair synthesized into one 2-element range. A clear action resets
// that field's criterion to empty for this render, overriding whatever the
// raw view state holds.
func (p *Pipeline) snapshot(action Action) record.Criteria {
	criteria := make(record.Criteria, len(p.view.Filters)+len(p.view.Ranges)+1)
	for field, value := range p.view.Filters {
		criteria[field] = value
	}
	criteria[p.queryField] = p.view.Query

	for field, bounds := range p.view.Ranges {
		if record.IsEmpty(bounds.From) || record.IsEmpty(bounds.To) {
			continue
		}
		criteria[field] = []any{bounds.From, bounds.To}
	}

	if action.Kind == ActionClear && action.Field != "" {
		criteria[action.Field] = ""
	}
	return criteria
}

func (p *Pipeline) emit(event TableEvent) {
	if p.bus != nil {
		p.bus.Emit(string(event.Type), event)
	}
}

// RegisterSubscription registers a grid-scoped subscription and returns
// its id.
func (p *Pipeline) RegisterSubscription(options RegisterSubscriptionOptions) string {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	unsubscribe := p.bus.Subscribe(string(options.Event), options.Callback)
	id := uuid.New().String()
	p.subscriptions[id] = &SubscriptionInfo{
		Event:       options.Event,
		Label:       options.Label,
		Description: options.Description,
		Unsubscribe: unsubscribe,
	}
	return id
}

// UnregisterSubscription tears down a subscription by id.
func (p *Pipeline) UnregisterSubscription(id string) {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	if info := p.subscriptions[id]; info != nil {
		info.Unsubscribe()
		delete(p.subscriptions, id)
	}
}

// Subscriptions lists the live subscriptions.
func (p *Pipeline) Subscriptions() []SubscriptionInfo {
	p.subMu.RLock()
	defer p.subMu.RUnlock()
	out := make([]SubscriptionInfo, 0, len(p.subscriptions))
	for _, info := range p.subscriptions {
		out = append(out, *info)
	}
	return out
}
