package tour

// Key is a navigation key. Values match the names terminal and browser
// hosts already use for these keys.
type Key string

const (
	KeyEscape Key = "esc"
	KeyRight  Key = "right"
	KeyEnter  Key = "enter"
	KeyLeft   Key = "left"
)

// HandleKey applies the keyboard contract and reports whether the key was
// consumed. Keys are ignored while inactive.
//
//	Escape      skip (finish when the tour is already complete)
//	Right/Enter next
//	Left        back
func (c *Controller) HandleKey(k Key) bool {
	if c.state == StateInactive {
		return false
	}

	switch k {
	case KeyEscape:
		if c.state == StateComplete {
			return c.Finish()
		}
		return c.Skip()
	case KeyRight, KeyEnter:
		return c.Next()
	case KeyLeft:
		return c.Back()
	default:
		return false
	}
}
