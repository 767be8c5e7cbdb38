package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/settle/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateEdit
	txStateDelete
)

type TransactionsModel struct {
	CommonModel
	txService *transaction.Service

	state txState
	table table.Model
	txs   []*transaction.Transaction
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formStatus  string
	formConfirm bool
}

func NewTransactionsModel(txSvc *transaction.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "MID", Width: 14},
		{Title: "TID", Width: 10},
		{Title: "Type", Width: 28},
		{Title: "Amount", Width: 14},
		{Title: "Net", Width: 14},
		{Title: "MDR", Width: 10},
		{Title: "Diff", Width: 10},
		{Title: "Status", Width: 10},
	}

	return TransactionsModel{
		txService: txSvc,
		table:     newTable(columns),
		loading:   true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state != txStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit status | x: delete | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		m.err = msg.err
		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case txSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == txStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEdit()
		case "x":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) enterEdit() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	m.formStatus = tx.Status
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("status").
				Title("Status").
				Value(&m.formStatus).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("status cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) enterDelete() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s %s (%s)?", tx.MID, FormatAmount(tx.Amount), FormatDate(tx.Date))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateBrowse
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

	tx := m.selected()

	if m.state == txStateEdit {
		return m, m.saveStatusCmd(tx, strings.TrimSpace(m.form.GetString("status")))
	}

	if !m.form.GetBool("confirm") {
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(tx)
}

func (m TransactionsModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state != txStateBrowse && m.form != nil {
		title := "Edit Transaction"
		if m.state == txStateDelete {
			title = "Delete Transaction"
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

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.MID,
			tx.TID,
			typeLabel(tx),
			FormatAmount(tx.Amount),
			FormatAmount(tx.NetAmount),
			FormatOptionalAmount(tx.MDR),
			FormatOptionalAmount(tx.Difference),
			tx.Status,
		})
	}

	m.table.SetRows(rows)
}

func typeLabel(tx *transaction.Transaction) string {
	if tx.TransactionType == nil {
		return "(deleted type)"
	}

	return tx.TransactionType.DisplayName()
}

// Messages

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

type txSavedMsg struct {
	status string
	err    error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx)

		return loadTxsMsg{txs: txs, err: err}
	}
}

func (m TransactionsModel) saveStatusCmd(tx *transaction.Transaction, status string) tea.Cmd {
	if tx == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.txService.Update(ctx, tx.ID, transaction.UpdateParams{Status: &status}); err != nil {
			return txSavedMsg{err: err}
		}

		return txSavedMsg{status: fmt.Sprintf("Status set to %s", status)}
	}
}

func (m TransactionsModel) deleteCmd(tx *transaction.Transaction) tea.Cmd {
	if tx == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Delete(ctx, tx.ID); err != nil {
			return txSavedMsg{err: err}
		}

		return txSavedMsg{status: "Transaction deleted"}
	}
}
