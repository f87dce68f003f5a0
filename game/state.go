package game

// State is any game state a search tree can cache at a node.
type State interface {
	ActionSpace() int        // returns the number of permissible actions
	LegalActionMask() []bool // true where the action is legal; len == ActionSpace()
}

// MaskState is the smallest possible State: nothing but a legality mask.
type MaskState []bool

func (m MaskState) ActionSpace() int        { return len(m) }
func (m MaskState) LegalActionMask() []bool { return []bool(m) }

// CountLegal returns the number of legal actions in a mask.
func CountLegal(mask []bool) (retVal int) {
	for _, legal := range mask {
		if legal {
			retVal++
		}
	}
	return
}

// FirstLegal returns the lowest legal action, or -1 if there is none.
func FirstLegal(mask []bool) int {
	for i, legal := range mask {
		if legal {
			return i
		}
	}
	return -1
}
