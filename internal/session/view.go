package session

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/game"
)

// View is what a client renders for one session
type View struct {
	SessionID string    `json:"session_id"`
	Scene     string    `json:"scene"`
	Menu      *MenuView `json:"menu,omitempty"`
	Game      *GameView `json:"game,omitempty"`
}

// MenuView is the title screen
type MenuView struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	WalletConnected bool   `json:"wallet_connected"`
	WalletStatus    string `json:"wallet_status"`
	ButtonLabel     string `json:"button_label"`
}

// GameView is the gameplay screen
type GameView struct {
	Player    domain.PlayerState `json:"player"`
	StatsText string             `json:"stats_text"`
	Board     BoardView          `json:"board"`
	NextTask  NextTaskView       `json:"next_task"`
	Active    []ActiveTaskView   `json:"active"`
	Buttons   []string           `json:"buttons"`
}

// BoardView lists the offered tasks
type BoardView struct {
	Header   string         `json:"header"`
	Empty    string         `json:"empty,omitempty"`
	Tasks    []TaskCardView `json:"tasks"`
	Capacity int            `json:"capacity"`
}

// TaskCardView is one clickable offered task
type TaskCardView struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Reward int    `json:"reward"`
	Text   string `json:"text"`
}

// NextTaskView is the generation countdown display
type NextTaskView struct {
	Text       string  `json:"text"`
	Fraction   float64 `json:"fraction"`
	MaxReached bool    `json:"max_reached"`
}

// ActiveTaskView is one progress bar
type ActiveTaskView struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Progress float64 `json:"progress"`
	Text     string  `json:"text"`
}

var printer = message.NewPrinter(language.English)

func menuView(wallet string) *MenuView {
	label := domain.ButtonConnectWallet
	if wallet != "" {
		label = domain.ButtonStartGame
	}
	return &MenuView{
		Title:           domain.GameTitle,
		Subtitle:        domain.GameSubtitle,
		WalletConnected: wallet != "",
		WalletStatus:    domain.WalletStatus(wallet),
		ButtonLabel:     label,
	}
}

func gameView(snap game.Snapshot) *GameView {
	v := &GameView{
		Player:    snap.Player,
		StatsText: statsText(snap.Player),
		Board: BoardView{
			Header:   domain.BoardHeader,
			Tasks:    make([]TaskCardView, 0, len(snap.Queue)),
			Capacity: snap.QueueCapacity,
		},
		NextTask: nextTaskView(snap),
		Active:   make([]ActiveTaskView, 0, len(snap.Active)),
		Buttons:  []string{ButtonStore, ButtonSkills},
	}

	if len(snap.Queue) == 0 {
		v.Board.Empty = domain.BoardEmpty
	}
	for _, t := range snap.Queue {
		v.Board.Tasks = append(v.Board.Tasks, TaskCardView{
			ID:     t.ID.String(),
			Title:  t.Template.Title,
			Reward: t.Template.Reward,
			Text:   printer.Sprintf(TaskRewardFmt, t.Template.Title, t.Template.Reward),
		})
	}
	for _, a := range snap.Active {
		v.Active = append(v.Active, ActiveTaskView{
			ID:       a.ID.String(),
			Title:    a.Title,
			Progress: a.Progress,
			Text:     printer.Sprintf(ActiveProgressFmt, a.Title, int(math.Floor(a.Progress))),
		})
	}
	return v
}

func nextTaskView(snap game.Snapshot) NextTaskView {
	if snap.QueueFull {
		return NextTaskView{Text: domain.MaxTasksReached, Fraction: snap.TimerFraction, MaxReached: true}
	}
	return NextTaskView{
		Text:     printer.Sprintf(domain.NextTaskInFmt, ceilSeconds(snap.TimerRemaining.Seconds())),
		Fraction: snap.TimerFraction,
	}
}

func statsText(p domain.PlayerState) string {
	lines := []string{
		printer.Sprintf(StatsWorkFmt, p.Work),
		printer.Sprintf(StatsFoodFmt, p.Food),
		printer.Sprintf(StatsEnergyFmt, p.Energy),
		SkillsHeader,
		printer.Sprintf(SkillDevFmt, p.Skills.Development),
		printer.Sprintf(SkillDesignFmt, p.Skills.Design),
		printer.Sprintf(SkillMarketFmt, p.Skills.Marketing),
	}
	return strings.Join(lines, "\n")
}

func ceilSeconds(s float64) int {
	return int(math.Ceil(s))
}
