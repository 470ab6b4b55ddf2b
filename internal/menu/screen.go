package menu

import (
	"strings"

	"alcyxob/fitness-bot/internal/domain"
)

// Screen is what the transport renders for one navigation step.
type Screen struct {
	Caption  string   `json:"caption"`
	Media    string   `json:"media"`
	Keyboard Keyboard `json:"keyboard"`
}

// Keyboard lists buttons in display order; Sizes gives the number of buttons
// on each row.
type Keyboard struct {
	Buttons []Button `json:"buttons"`
	Sizes   []int    `json:"sizes"`
}

type Button struct {
	Label  string  `json:"label"`
	Target Address `json:"target"`
}

// Row appends one row of buttons. Empty rows are skipped.
func (k *Keyboard) Row(buttons ...Button) {
	if len(buttons) == 0 {
		return
	}
	k.Buttons = append(k.Buttons, buttons...)
	k.Sizes = append(k.Sizes, len(buttons))
}

func button(label string, target Address) Button {
	return Button{Label: label, Target: target}
}

func mainMenuButton() Button {
	return button("🏠 Main menu", Address{Level: LevelMain, Action: ActionMain})
}

func backButton(target Address) Button {
	return button("⬅ Back", target)
}

// errorScreen never offers buttons that assume the failed data exists.
func errorScreen(media, caption string) Screen {
	var kb Keyboard
	kb.Row(mainMenuButton())
	return Screen{Caption: caption, Media: media, Keyboard: kb}
}

const noExercisesCaption = "No exercises yet. Add a new one!"

// exerciseList renders the exercises of a day, or an invitation to add one.
func exerciseList(exercises []domain.Exercise) string {
	if len(exercises) == 0 {
		return noExercisesCaption
	}
	var b strings.Builder
	b.WriteString("Your exercises:\n")
	for _, e := range exercises {
		b.WriteString("\n🔘 ")
		b.WriteString(e.Name)
	}
	return b.String()
}

func templateList(templates []domain.UserExercise) string {
	if len(templates) == 0 {
		return noExercisesCaption
	}
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, "🔘 "+t.Name)
	}
	return strings.Join(names, "\n")
}

// withNotice puts an outcome line above the caption.
func withNotice(notice, caption string) string {
	if notice == "" {
		return caption
	}
	return notice + "\n\n" + caption
}

// Grid lays buttons out in rows of at most width.
func (k *Keyboard) Grid(width int, buttons ...Button) {
	for len(buttons) > 0 {
		n := min(width, len(buttons))
		k.Row(buttons[:n]...)
		buttons = buttons[n:]
	}
}
