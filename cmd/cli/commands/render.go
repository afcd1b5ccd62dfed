package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jakechorley/shifttrack/pkg/core/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	activeStyle  = cellStyle.Foreground(lipgloss.Color("2"))
	dimStyle     = cellStyle.Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
)

const statusCol = 6

func shiftTable(shifts []model.Shift) string {
	rows := make([][]string, 0, len(shifts))
	for _, s := range shifts {
		rows = append(rows, []string{
			s.UserName,
			s.UserRole,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Duration,
			s.Status,
			locationMark(s.HasStartLocation(), s.HasEndLocation()),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusCol && shifts[row].IsInProgress {
				return activeStyle
			}
			return cellStyle
		}).
		Headers("Employee", "Role", "Date", "Start", "End", "Duration", "Status", "Map").
		Rows(rows...).
		String()
}

func locationMark(start, end bool) string {
	switch {
	case start && end:
		return "in/out"
	case start:
		return "in"
	case end:
		return "out"
	}
	return "-"
}

func userTable(users []model.User, placeholder func(string) bool) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		email := u.Email
		if placeholder(email) {
			email = "-"
		}
		rows = append(rows, []string{u.ID, u.Name, email, u.Role, u.SubaccountID})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if rows[row][col] == "-" {
				return dimStyle
			}
			return cellStyle
		}).
		Headers("ID", "Name", "Email", "Role", "Subaccount").
		Rows(rows...).
		String()
}
