// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 The Swarmlight Authors

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swarmlight/swarmctl/pkg/lightswarm"
	"github.com/swarmlight/swarmctl/pkg/sk6812"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

const maxControlLogEntries = 100

// Device families
const (
	familyLights = iota
	familyStrip
)

// Focus states
const (
	focusCommandList = iota
	focusChannels
	focusParam1
	focusParam2
	focusParam3
	focusSend
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// commandItem is one selectable entry: a Lightswarm action or a strip colour
type commandItem struct {
	family int
	name   string
}

// Implement list.Item interface
func (c commandItem) Title() string { return c.name }
func (c commandItem) Description() string {
	if c.family == familyLights {
		return "lights"
	}
	return "strip"
}
func (c commandItem) FilterValue() string { return c.name }

// paramLabels returns the extra input fields the selected command uses, in
// the order they are shown.
func paramLabels(item commandItem) []string {
	if item.family == familyStrip {
		return []string{"Brightness", "Effect"}
	}
	switch item.name {
	case "level":
		return []string{"Level"}
	case "fade":
		return []string{"Level", "Interval", "Step"}
	case "set_pseudo":
		return []string{"Pseudo"}
	default:
		return nil
	}
}

// controlLogEntry is one line in the event log
type controlLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// controlModel is the Bubble Tea model for the control TUI
type controlModel struct {
	devices controlDevices

	// Command selection and inputs
	commandList list.Model
	channels    textinput.Model
	params      [3]textinput.Model

	// UI state
	focusedField int
	eventLog     []controlLogEntry
	width        int
	height       int
	quitting     bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

// sendResultMsg reports the outcome of one asynchronous send
type sendResultMsg struct {
	device string
	desc   string
	err    error
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialControlModel(devices controlDevices) controlModel {
	items := make([]list.Item, 0, 20)
	for _, name := range lightswarm.ActionNames() {
		items = append(items, commandItem{family: familyLights, name: name})
	}
	for _, name := range sk6812.ColourNames() {
		items = append(items, commandItem{family: familyStrip, name: name})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)
	commandList := list.New(items, delegate, 28, 14)
	commandList.Title = "Commands"
	commandList.SetShowStatusBar(false)
	commandList.SetShowHelp(false)
	commandList.SetFilteringEnabled(false)

	channels := textinput.New()
	channels.Placeholder = "1,2,3 or all"
	channels.CharLimit = 64
	channels.Width = 20

	var params [3]textinput.Model
	for i := range params {
		params[i] = textinput.New()
		params[i].CharLimit = 16
		params[i].Width = 12
	}

	return controlModel{
		devices:      devices,
		commandList:  commandList,
		channels:     channels,
		params:       params,
		focusedField: focusCommandList,
		eventLog:     make([]controlLogEntry, 0),
		width:        80,
		height:       24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m controlModel) Init() tea.Cmd {
	return nil
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.commandList.SetHeight(max(8, m.height-14))

	case sendResultMsg:
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("%s: %s FAILED: %v", msg.device, msg.desc, msg.err), true)
		} else {
			m.addLogEntry(fmt.Sprintf("%s: sent %s", msg.device, msg.desc), false)
		}
	}

	// Update the focused child component
	var cmd tea.Cmd
	switch m.focusedField {
	case focusCommandList:
		m.commandList, cmd = m.commandList.Update(msg)
	case focusChannels:
		m.channels, cmd = m.channels.Update(msg)
	case focusParam1, focusParam2, focusParam3:
		i := m.focusedField - focusParam1
		m.params[i], cmd = m.params[i].Update(msg)
	}
	return m, cmd
}

func (m controlModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "q":
		// Only quit from the list; text inputs need the letter
		if m.focusedField == focusCommandList {
			m.quitting = true
			return m, tea.Quit
		}

	case "tab":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil

	case "enter":
		return m, m.buildSendCmd()
	}

	// Pass through to the focused component
	var cmd tea.Cmd
	switch m.focusedField {
	case focusCommandList:
		m.commandList, cmd = m.commandList.Update(msg)
	case focusChannels:
		m.channels, cmd = m.channels.Update(msg)
	case focusParam1, focusParam2, focusParam3:
		i := m.focusedField - focusParam1
		m.params[i], cmd = m.params[i].Update(msg)
	}
	return m, cmd
}

// cycleFocus moves focus through list, channels, the inputs the selected
// command actually uses, and the send button.
func (m *controlModel) cycleFocus(delta int) {
	numParams := 0
	if item, ok := m.commandList.SelectedItem().(commandItem); ok {
		numParams = len(paramLabels(item))
	}

	order := []int{focusCommandList, focusChannels}
	for i := 0; i < numParams; i++ {
		order = append(order, focusParam1+i)
	}
	order = append(order, focusSend)

	pos := 0
	for i, f := range order {
		if f == m.focusedField {
			pos = i
			break
		}
	}
	m.focusedField = order[(pos+delta+len(order))%len(order)]

	m.channels.Blur()
	for i := range m.params {
		m.params[i].Blur()
	}
	switch m.focusedField {
	case focusChannels:
		m.channels.Focus()
	case focusParam1, focusParam2, focusParam3:
		m.params[m.focusedField-focusParam1].Focus()
	}
}

func (m *controlModel) addLogEntry(message string, isError bool) {
	m.eventLog = append(m.eventLog, controlLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.eventLog) > maxControlLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-maxControlLogEntries:]
	}
}

//////////////////////////////////////////////////////////////
// Command Building
//////////////////////////////////////////////////////////////

// buildSendCmd assembles the selected command from the inputs and returns a
// tea.Cmd that submits it off the UI loop. Input problems land in the event
// log and return nil.
func (m *controlModel) buildSendCmd() tea.Cmd {
	item, ok := m.commandList.SelectedItem().(commandItem)
	if !ok {
		return nil
	}

	channelsText := strings.TrimSpace(m.channels.Value())
	if channelsText == "" {
		if item.family == familyStrip {
			channelsText = "all"
		} else {
			m.addLogEntry("no channels given", true)
			return nil
		}
	}

	switch item.family {
	case familyLights:
		return m.buildLightsCmd(item, channelsText)
	case familyStrip:
		return m.buildStripCmd(item, channelsText)
	}
	return nil
}

func (m *controlModel) buildLightsCmd(item commandItem, channelsText string) tea.Cmd {
	channels, err := parseChannels(channelsText)
	if err != nil {
		m.addLogEntry(err.Error(), true)
		return nil
	}

	swarmCmd := lightswarm.Command{
		Name:     "tui " + item.name,
		Action:   item.name,
		Channels: channels,
	}
	for i, label := range paramLabels(item) {
		text := strings.TrimSpace(m.params[i].Value())
		if text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			m.addLogEntry(fmt.Sprintf("invalid %s %q: must be an integer", strings.ToLower(label), text), true)
			return nil
		}
		switch label {
		case "Level":
			swarmCmd.Level = &n
		case "Interval":
			swarmCmd.Interval = &n
		case "Step":
			swarmCmd.Step = &n
		case "Pseudo":
			swarmCmd.PseudoAddress = &n
		}
	}

	desc := fmt.Sprintf("%s to channels %s", item.name, channelsText)
	ctrl := m.devices.lights
	return func() tea.Msg {
		return sendResultMsg{device: "lights", desc: desc, err: ctrl.Submit(swarmCmd)}
	}
}

func (m *controlModel) buildStripCmd(item commandItem, channelsText string) tea.Cmd {
	channels, err := parseStripChannels(channelsText)
	if err != nil {
		m.addLogEntry(err.Error(), true)
		return nil
	}

	ledCmd := sk6812.Command{
		Name:     "tui " + item.name,
		Channels: channels,
		Colour:   item.name,
	}
	if text := strings.TrimSpace(m.params[0].Value()); text != "" {
		brightness, err := strconv.ParseFloat(text, 64)
		if err != nil {
			m.addLogEntry(fmt.Sprintf("invalid brightness %q: must be a number", text), true)
			return nil
		}
		ledCmd.Brightness = &brightness
	}
	if text := strings.TrimSpace(m.params[1].Value()); text != "" {
		effect := text
		ledCmd.Effect = &effect
	}

	desc := fmt.Sprintf("%s to channels %s", item.name, channelsText)
	ctrl := m.devices.strip
	return func() tea.Msg {
		return sendResultMsg{device: "strip", desc: desc, err: ctrl.Submit(ledCmd)}
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m controlModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	focusedBoxStyle := boxStyle.
		BorderForeground(lipgloss.Color("12"))

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Padding(0, 2)

	focusedButtonStyle := buttonStyle.
		Background(lipgloss.Color("10"))

	// Header
	s.WriteString(titleStyle.Render("SWARMLIGHT CONTROL"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render("| q=quit Tab=switch Enter=send"))
	s.WriteString("\n")

	// Device status lines
	s.WriteString(fmt.Sprintf(" %s %s  %s\n",
		labelStyle.Render("Lights:"),
		m.renderState(m.devices.lightsTx.State().String(), valueStyle, errorStyle),
		headerStyle.Render(m.devices.lightsInfo)))
	s.WriteString(fmt.Sprintf(" %s  %s  %s\n\n",
		labelStyle.Render("Strip:"),
		m.renderState(m.devices.stripTx.State().String(), valueStyle, errorStyle),
		headerStyle.Render(m.devices.stripInfo)))

	// Command list panel
	listStyle := boxStyle
	if m.focusedField == focusCommandList {
		listStyle = focusedBoxStyle
	}
	listPanel := listStyle.Render(m.commandList.View())

	// Form panel
	formPanel := boxStyle.Render(m.renderForm(labelStyle, buttonStyle, focusedButtonStyle))

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listPanel, " ", formPanel))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(m.renderEventLog(labelStyle, errorStyle, boxStyle))

	return s.String()
}

func (m controlModel) renderState(state string, valueStyle, errorStyle lipgloss.Style) string {
	if state == "CONNECTED" {
		return valueStyle.Render(state)
	}
	return errorStyle.Render(state)
}

func (m controlModel) renderForm(labelStyle, buttonStyle, focusedButtonStyle lipgloss.Style) string {
	var s strings.Builder

	item, ok := m.commandList.SelectedItem().(commandItem)
	if !ok {
		return "No command selected"
	}

	s.WriteString(fmt.Sprintf("%s %s (%s)\n\n", labelStyle.Render("Command:"), item.name, item.Description()))

	s.WriteString(labelStyle.Render("Channels: "))
	s.WriteString(m.renderInput(m.channels, m.focusedField == focusChannels))
	s.WriteString("\n")

	for i, label := range paramLabels(item) {
		s.WriteString(labelStyle.Render(fmt.Sprintf("%-9s ", label+":")))
		s.WriteString(m.renderInput(m.params[i], m.focusedField == focusParam1+i))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	btnText := "[ Send ]"
	if m.focusedField == focusSend {
		s.WriteString(focusedButtonStyle.Render(btnText))
	} else {
		s.WriteString(buttonStyle.Render(btnText))
	}

	return s.String()
}

func (m controlModel) renderInput(input textinput.Model, focused bool) string {
	if focused {
		return input.View()
	}
	// Show as plain text when not focused
	val := input.Value()
	if val == "" {
		val = input.Placeholder
	}
	return fmt.Sprintf("[%s]", val)
}

func (m controlModel) renderEventLog(labelStyle, errorStyle, boxStyle lipgloss.Style) string {
	var s strings.Builder

	s.WriteString(labelStyle.Render("Events"))
	s.WriteString("\n")

	shown := 8
	start := 0
	if len(m.eventLog) > shown {
		start = len(m.eventLog) - shown
	}
	if len(m.eventLog) == 0 {
		s.WriteString("(nothing sent yet)\n")
	}
	for _, entry := range m.eventLog[start:] {
		line := fmt.Sprintf("%s %s", entry.timestamp.Format("15:04:05"), entry.message)
		if entry.isError {
			line = errorStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	return boxStyle.Width(max(40, m.width-4)).Render(s.String())
}
