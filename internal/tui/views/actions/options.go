package actions

// Action is an entry of the browse menu.
type Action string

const (
	Open   Action = "Open"
	New    Action = "New"
	Export Action = "Export"
	Delete Action = "Delete"
)

// RenderOptions returns the browse actions in menu order.
func RenderOptions() []Action {
	return []Action{Open, New, Export, Delete}
}
