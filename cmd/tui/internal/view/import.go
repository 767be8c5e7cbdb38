package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/settle/internal/importer"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

const importTimeout = 2 * time.Minute

// maxShownViolations caps how many row errors the result screen lists.
const maxShownViolations = 8

type importState int

const (
	importStateLoadingTypes importState = iota
	importStateTypeSelect
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	txService     *transaction.Service
	typeService   *transactiontype.Service
	importService *importer.Service

	state      importState
	form       *huh.Form
	filePicker filepicker.Model
	types      []*transactiontype.TransactionType
	typeID     string

	status string
	err    error
}

func NewImportModel(txSvc *transaction.Service, typeSvc *transactiontype.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		txService:     txSvc,
		typeService:   typeSvc,
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Settlement File" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadTypesCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importTypesMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error loading transaction types: %v", msg.err)

			return m, nil
		}

		if len(msg.types) == 0 {
			m.state = importStateResult
			m.err = errors.New("no transaction types")
			m.status = "Create a transaction type before importing."

			return m, nil
		}

		m.types = msg.types
		m.form = m.buildTypeForm()
		m.state = importStateTypeSelect

		return m, m.form.Init()

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = describeImportError(msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions.", msg.count)

		return m, nil
	}

	switch m.state {
	case importStateTypeSelect:
		return m.updateTypeSelect(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult:
		if len(m.types) == 0 {
			return m, Back
		}

		m.err = nil
		m.status = ""
		m.form = m.buildTypeForm()
		m.state = importStateTypeSelect

		return m, m.form.Init()
	}

	return m, Back
}

func (m ImportModel) buildTypeForm() *huh.Form {
	options := make([]huh.Option[string], len(m.types))
	for i, t := range m.types {
		options[i] = huh.NewOption(t.DisplayName(), t.ID.String())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("transaction_type").
				Title("Transaction Type").
				Description("Every row in the file is stored under this type").
				Options(options...).
				Value(&m.typeID),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) updateTypeSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.typeID = m.form.GetString("transaction_type")
	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path, m.typeID)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateLoadingTypes:
		return lipgloss.NewStyle().Padding(2).Render("Loading transaction types...")
	case importStateTypeSelect:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select settlement file to import:\n\n%s", m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// describeImportError lists row violations one per line.
func describeImportError(err error) string {
	var violations validation.Errors
	if !errors.As(err, &violations) {
		return fmt.Sprintf("Error: %v", err)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "File rejected, %d problem(s):\n", len(violations))

	for i, v := range violations {
		if i == maxShownViolations {
			fmt.Fprintf(&b, "  ... and %d more\n", len(violations)-i)
			break
		}

		fmt.Fprintf(&b, "  %s: %s\n", v.Field, v.Message)
	}

	return b.String()
}

// Messages

type importTypesMsg struct {
	types []*transactiontype.TransactionType
	err   error
}

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) loadTypesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		types, err := m.typeService.List(ctx)

		return importTypesMsg{types: types, err: err}
	}
}

func (m ImportModel) importCmd(path, typeID string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Transactions(importer.FormatEDC, f, typeID)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.txService.ImportBatch(ctx, params[0].TransactionTypeID, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(txs)}
	}
}
