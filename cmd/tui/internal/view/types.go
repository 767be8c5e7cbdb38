package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

type typesState int

const (
	typesStateBrowse typesState = iota
	typesStateCreate
	typesStateDelete
)

type TypesModel struct {
	CommonModel
	typeService *transactiontype.Service
	validator   *validation.Validator

	state typesState
	table table.Model
	types []*transactiontype.TransactionType
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName    string
	formType1   string
	formType2   string
	formConfirm bool
}

func NewTypesModel(svc *transactiontype.Service, v *validation.Validator) TypesModel {
	columns := []table.Column{
		{Title: "Name", Width: 36},
		{Title: "Bank", Width: 16},
		{Title: "Type 1", Width: 12},
		{Title: "Type 2", Width: 12},
		{Title: "Created", Width: 12},
	}

	return TypesModel{
		typeService: svc,
		validator:   v,
		table:       newTable(columns),
		loading:     true,
	}
}

// newTable builds a focused table with the console's shared styling.
func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m TypesModel) Title() string { return "Transaction Types" }

func (m TypesModel) ShortHelp() string {
	if m.state != typesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | x: delete | r: refresh"
}

func (m TypesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TypesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTypesMsg:
		m.loading = false
		m.err = msg.err
		m.types = msg.types
		m.refreshTable()

		return m, nil

	case typeSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = typesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == typesStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m TypesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreate()
		case "x":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TypesModel) enterCreate() (tea.Model, tea.Cmd) {
	m.formName, m.formType1, m.formType2 = "", "", ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Bank / Name").
				Value(&m.formName).
				Validate(func(s string) error {
					return m.checkField("name", s)
				}),

			huh.NewInput().
				Key("type1").
				Title("Type 1 (optional)").
				Placeholder("Debit").
				Value(&m.formType1),

			huh.NewInput().
				Key("type2").
				Title("Type 2 (optional)").
				Placeholder("Credit").
				Value(&m.formType2),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = typesStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

// checkField runs one field through the same schema the API uses.
func (m TypesModel) checkField(name, value string) error {
	_, err := m.validator.Validate(validation.Payload{name: value}, transactiontype.UpdateSchema)
	if err == nil {
		return nil
	}

	var violations validation.Errors
	if errors.As(err, &violations) && len(violations) > 0 {
		return errors.New(violations[0].Message)
	}

	return err
}

func (m TypesModel) enterDelete() (tea.Model, tea.Cmd) {
	t := m.selected()
	if t == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s?", t.DisplayName())).
				Description("Transactions referencing it are kept.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = typesStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m TypesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = typesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == typesStateCreate {
		return m, m.createCmd()
	}

	if !m.form.GetBool("confirm") {
		m.state = typesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(m.selected())
}

func (m TypesModel) selected() *transactiontype.TransactionType {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.types) {
		return nil
	}

	return m.types[idx]
}

func (m TypesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transaction types...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state != typesStateBrowse && m.form != nil {
		title := "New Transaction Type"
		if m.state == typesStateDelete {
			title = "Delete Transaction Type"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, content, helpStyle.Render(m.ShortHelp())),
	)
}

func (m *TypesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.types))
	for _, t := range m.types {
		rows = append(rows, table.Row{
			t.DisplayName(),
			t.Name,
			t.Type1,
			t.Type2,
			t.CreatedAt.Format("2006-01-02"),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadTypesMsg struct {
	types []*transactiontype.TransactionType
	err   error
}

type typeSavedMsg struct {
	status string
	err    error
}

func (m TypesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		types, err := m.typeService.List(ctx)

		return loadTypesMsg{types: types, err: err}
	}
}

func (m TypesModel) createCmd() tea.Cmd {
	params := transactiontype.CreateParams{
		Name:  strings.TrimSpace(m.form.GetString("name")),
		Type1: strings.TrimSpace(m.form.GetString("type1")),
		Type2: strings.TrimSpace(m.form.GetString("type2")),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := m.typeService.Create(ctx, params)
		if err != nil {
			return typeSavedMsg{err: err}
		}

		return typeSavedMsg{status: fmt.Sprintf("Created %s", t.DisplayName())}
	}
}

func (m TypesModel) deleteCmd(t *transactiontype.TransactionType) tea.Cmd {
	if t == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.typeService.Delete(ctx, t.ID); err != nil {
			return typeSavedMsg{err: err}
		}

		return typeSavedMsg{status: fmt.Sprintf("Deleted %s", t.DisplayName())}
	}
}
