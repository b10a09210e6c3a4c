package app

import (
	"time"

	"github.com/pennywise/pennywise/internal/autosave"
	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/event_bus"
	"github.com/pennywise/pennywise/internal/storage"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/analytics"
	"github.com/pennywise/pennywise/pkg/budget"
	"github.com/pennywise/pennywise/pkg/note"
	"github.com/pennywise/pennywise/pkg/preferences"
	"github.com/pennywise/pennywise/pkg/transaction"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Store     storage.Store
	Bus       *event_bus.EventBus
	Clock     utils.Clock
	Debouncer *autosave.Debouncer

	PreferenceStore   preferences.PreferenceStore
	PreferenceHandler *preferences.PreferencesHandler

	TransactionStore   transaction.TransactionStore
	TransactionService transaction.TransactionService
	TransactionHandler *transaction.TransactionHandler

	NoteStore   note.NoteStore
	NoteService note.NoteService
	NoteHandler *note.NoteHandler

	BudgetStore   budget.BudgetStore
	BudgetService budget.BudgetService
	BudgetHandler *budget.BudgetHandler

	AnalyticsEngine  *analytics.Engine
	AnalyticsHandler *analytics.AnalyticsHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store storage.Store, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Store = store
	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}
	deps.Debouncer = autosave.NewDebouncer(time.Duration(cfg.AutoSave.DelayMillis) * time.Millisecond)

	deps.PreferenceStore = preferences.NewPreferenceStore(store)
	deps.PreferenceHandler = preferences.NewPreferencesHandler(deps.PreferenceStore)

	deps.TransactionStore = transaction.NewTransactionStore(store)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionStore, deps.PreferenceStore, deps.Bus, deps.Clock)
	deps.TransactionHandler = transaction.NewTransactionHandler(deps.TransactionService)

	deps.NoteStore = note.NewNoteStore(store)
	deps.NoteService = note.NewNoteService(deps.NoteStore, deps.Debouncer, deps.Clock)
	deps.NoteHandler = note.NewNoteHandler(deps.NoteService)

	deps.BudgetStore = budget.NewBudgetStore(store)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetStore, deps.Bus)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.AnalyticsEngine = analytics.NewEngine(deps.Clock)
	deps.AnalyticsHandler = analytics.NewAnalyticsHandler(deps.AnalyticsEngine, deps.TransactionService)

	return deps
}
