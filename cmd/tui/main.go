package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/settle/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/settle/internal/config"
	"github.com/MrJamesThe3rd/settle/internal/database"
	"github.com/MrJamesThe3rd/settle/internal/export"
	"github.com/MrJamesThe3rd/settle/internal/importer"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	txStore "github.com/MrJamesThe3rd/settle/internal/transaction/store"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	typeStore "github.com/MrJamesThe3rd/settle/internal/transactiontype/store"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

type model struct {
	appName       string
	validator     *validation.Validator
	typeService   *transactiontype.Service
	txService     *transaction.Service
	importService *importer.Service
	exportService *export.Service

	currentView View

	typesView  view.TypesModel
	txView     view.TransactionsModel
	importView view.ImportModel
	exportView view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTypes        View = 1
	ViewTransactions View = 2
	ViewImport       View = 3
	ViewExport       View = 4
)

func initialModel() model {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	v := validation.New()
	typeSvc := transactiontype.NewService(typeStore.New(db))
	txSvc := transaction.NewService(txStore.New(db), typeSvc)
	impSvc := importer.NewService(v)
	expSvc := export.NewService(txSvc)

	return model{
		appName:       cfg.App.Name,
		validator:     v,
		typeService:   typeSvc,
		txService:     txSvc,
		importService: impSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTypes
				m.typesView = view.NewTypesModel(m.typeService, m.validator)

				return m, m.typesView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.txView = view.NewTransactionsModel(m.txService)

				return m, m.txView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.txService, m.typeService, m.importService)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTypes:
		var newModel tea.Model
		newModel, cmd = m.typesView.Update(msg)
		m.typesView = newModel.(view.TypesModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.txView.Update(msg)
		m.txView = newModel.(view.TransactionsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + " console\n\n" +
				"1. Transaction Types\n" +
				"2. Transactions\n" +
				"3. Import Settlement File\n" +
				"4. Export Transactions\n\n" +
				"q. Quit",
		)
	case ViewTypes:
		return m.typesView.View()
	case ViewTransactions:
		return m.txView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
