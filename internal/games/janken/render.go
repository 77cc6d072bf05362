package janken

import (
	"fmt"

	"github.com/vovakirdan/tui-janken/internal/config"
	"github.com/vovakirdan/tui-janken/internal/core"
)

// Minimum screen size for the full hand layout.
const (
	minScreenW = 60
	minScreenH = 16
	hudHeight  = 2
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	switch {
	case g.revealing:
		g.renderCountdown(dst)
	case g.session.ResultVisible():
		g.renderResult(dst)
	default:
		g.renderSelecting(dst)
	}

	if g.matchOver {
		g.renderMatchOver(dst)
	}
	if g.paused {
		g.renderOverlay(dst, "Paused", "Press Esc to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	var mode string
	if g.mode == ModeBestOf {
		mode = fmt.Sprintf("first to %d", g.targetWins)
	} else {
		mode = "free play"
	}
	hud := fmt.Sprintf(" Janken — You: %d  CPU: %d  Best: %d  (%s)",
		g.session.PlayerScore(), g.session.OpponentScore(), g.session.HighScore(), mode)

	dst.DrawText(0, 0, hud)
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 1, '─')
	}
}

// handTop returns the y where hand art begins.
func (g *Game) handTop(dst *core.Screen) int {
	return hudHeight + (dst.Height()-hudHeight-gestureHeight)/2 - 1
}

// renderHands draws both hand blocks with a vertical bob offset.
func (g *Game) renderHands(dst *core.Screen, player, opponent Choice, bob int) {
	top := g.handTop(dst) + bob
	artW := len(leftHands[Rock][0])
	leftX := dst.Width()/4 - artW/2
	rightX := dst.Width()*3/4 - artW/2

	if g.cfg.Theme.Style == config.ThemeCompact {
		dst.DrawTextColor(dst.Width()/4-len(player.String())/2, top+2, player.String(), core.ColorCyan)
		dst.DrawTextColor(dst.Width()*3/4-len(opponent.String())/2, top+2, opponent.String(), core.ColorOrange)
	} else {
		for i, line := range LeftHand(player) {
			dst.DrawTextColor(leftX, top+i, line, core.ColorCyan)
		}
		for i, line := range RightHand(opponent) {
			dst.DrawTextColor(rightX, top+i, line, core.ColorOrange)
		}
	}

	dst.DrawTextCentered(top+gestureHeight/2, "VS")
}

// renderSelecting draws the idle screen with the three choice cards.
func (g *Game) renderSelecting(dst *core.Screen) {
	// Idle animation: both sides pump closed fists
	bob := shakeOffset(int(g.tick) / idleBobTicks)
	g.renderHands(dst, Rock, Rock, bob)

	y := dst.Height() - 4
	dst.DrawTextCenteredColor(y, "[R] Rock    [P] Paper    [S] Scissors", core.ColorBrightYellow)
	dst.DrawTextCentered(y+2, "pick a gesture  ·  esc: pause  ·  q: quit")
}

// renderCountdown draws the reveal animation with the call captions.
func (g *Game) renderCountdown(dst *core.Screen) {
	bob := shakeOffset(g.revealTick / shakeBeatTicks)
	g.renderHands(dst, Rock, Rock, bob)

	captions := g.cfg.Reveal.Captions
	if len(captions) == 0 {
		captions = defaultCaptions
	}
	total := core.Max(g.cfg.Reveal.CountdownTicks, 1)
	elapsed := total - g.revealTick
	idx := core.Clamp(elapsed*len(captions)/total, 0, len(captions)-1)
	dst.DrawTextCenteredColor(dst.Height()-4, captions[idx], core.ColorBrightYellow)
}

// renderResult draws both revealed hands and the outcome banner.
func (g *Game) renderResult(dst *core.Screen) {
	player, opponent, ok := g.session.Choices()
	if !ok {
		return
	}
	g.renderHands(dst, player, opponent, 0)

	outcome, _ := g.session.Outcome()
	var banner string
	var color core.Color
	switch outcome {
	case Win:
		banner = fmt.Sprintf("YOU WIN — %s beats %s", player, opponent)
		color = core.ColorBrightGreen
	case Lose:
		banner = fmt.Sprintf("YOU LOSE — %s beats %s", opponent, player)
		color = core.ColorBrightRed
	default:
		banner = fmt.Sprintf("DRAW — both threw %s", player)
		color = core.ColorBrightYellow
	}

	y := dst.Height() - 4
	dst.DrawTextCenteredColor(y, banner, color)
	if !g.matchOver {
		dst.DrawTextCentered(y+2, "enter: next round  ·  n: new match  ·  q: quit")
	}
}

// renderMatchOver draws the end-of-match overlay.
func (g *Game) renderMatchOver(dst *core.Screen) {
	verdict := "You win the match!"
	if g.session.OpponentScore() > g.session.PlayerScore() {
		verdict = "CPU wins the match"
	}
	score := fmt.Sprintf("%d : %d  —  n: new match, b: menu", g.session.PlayerScore(), g.session.OpponentScore())
	g.renderOverlay(dst, verdict, score)
}

// renderOverlay draws a centered boxed message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()

	boxW := core.Max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// Animation timing in ticks.
const (
	idleBobTicks   = 8
	shakeBeatTicks = 4
)
