package client

import (
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Panel is the message presentation surface: it shows whatever the queue
// promoted, one message at a time, until the player dismisses it. In
// prompt mode it also runs a single-line editor.
type Panel struct {
	mu sync.Mutex

	visible bool
	prompt  bool
	text    string
	input   []rune
	submit  func(string)
	dismiss func()
}

func NewPanel() *Panel {
	return &Panel{}
}

// ShowParagraph implements game.MessageSurface.
func (p *Panel) ShowParagraph(text string, dismiss func()) {
	p.mu.Lock()
	p.visible = true
	p.prompt = false
	p.text = text
	p.submit = nil
	p.dismiss = dismiss
	p.mu.Unlock()
}

// ShowPrompt implements game.MessageSurface.
func (p *Panel) ShowPrompt(prompt string, submit func(string), dismiss func()) {
	p.mu.Lock()
	p.visible = true
	p.prompt = true
	p.text = prompt
	p.input = p.input[:0]
	p.submit = submit
	p.dismiss = dismiss
	p.mu.Unlock()
}

// Visible reports whether a message is on screen; the game loop routes
// input here while one is.
func (p *Panel) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// HandleInput consumes one frame of keyboard input. Enter dismisses a
// paragraph or submits a prompt; Escape always dismisses.
func (p *Panel) HandleInput() {
	p.mu.Lock()
	if !p.visible {
		p.mu.Unlock()
		return
	}

	if p.prompt {
		p.input = ebiten.AppendInputChars(p.input)
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	}

	var action func()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if p.prompt {
			value := strings.TrimSpace(string(p.input))
			submit := p.submit
			if value != "" && submit != nil {
				action = func() { submit(value) }
			}
		} else {
			action = p.dismiss
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		action = p.dismiss
	}

	if action != nil {
		p.visible = false
	}
	p.mu.Unlock()

	if action != nil {
		action()
	}
}

var panelColor = color.RGBA{0, 0, 0, 200}

// Draw renders the panel over the map.
func (p *Panel) Draw(screen *ebiten.Image, width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.visible {
		return
	}

	lines := strings.Split(wrapText(p.text, 70), "\n")
	panelHeight := float64(len(lines)*16 + 48)
	top := float64(height) - panelHeight

	ebitenutil.DrawRect(screen, 0, top, float64(width), panelHeight, panelColor)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, int(top)+8)
	if p.prompt {
		ebitenutil.DebugPrintAt(screen, "> "+string(p.input)+"_", 8, int(top)+len(lines)*16+12)
		ebitenutil.DebugPrintAt(screen, "[enter] submit  [esc] dismiss", 8, int(top)+len(lines)*16+28)
	} else {
		ebitenutil.DebugPrintAt(screen, "[enter] dismiss", 8, int(top)+len(lines)*16+12)
	}
}

func wrapText(text string, width int) string {
	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > width {
			b.WriteByte('\n')
			lineLen = 0
		} else if lineLen > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
