package page

import "time"

const (
	// DefaultTypingSpeed is the reveal interval for typed text.
	DefaultTypingSpeed = 75 * time.Millisecond
	// HeadlineTypingSpeed is the reveal interval of the landing headline.
	HeadlineTypingSpeed = 50 * time.Millisecond
)

// Typing reveals Target one rune per tick.
type Typing struct {
	target []rune
	shown  int
}

// NewTyping starts an empty reveal of target.
func NewTyping(target string) Typing {
	return Typing{target: []rune(target)}
}

// Tick reveals one more rune. It is a no-op once the text is complete.
func (t Typing) Tick() Typing {
	if t.shown < len(t.target) {
		t.shown++
	}
	return t
}

// Retarget restarts from empty when target differs from the current one.
func (t Typing) Retarget(target string) Typing {
	if target == t.Target() {
		return t
	}
	return NewTyping(target)
}

// Target is the full string being revealed.
func (t Typing) Target() string {
	return string(t.target)
}

// Text is the revealed prefix.
func (t Typing) Text() string {
	return string(t.target[:t.shown])
}

// Len is the number of revealed runes.
func (t Typing) Len() int {
	return t.shown
}

// Done reports whether the whole target is shown.
func (t Typing) Done() bool {
	return t.shown >= len(t.target)
}
