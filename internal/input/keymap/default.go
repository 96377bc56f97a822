package keymap

// Keymap names and priorities.
const (
	DefaultName = "default"
	UserName    = "user"

	DefaultPriority = 0
	UserPriority    = 10
)

// LoadDefaults registers the default keymap.
func LoadDefaults(r *Registry) error {
	return r.Register(DefaultKeymap())
}

// DefaultKeymap returns the built-in calculator bindings.
func DefaultKeymap() *Keymap {
	km := &Keymap{
		Name:     DefaultName,
		Priority: DefaultPriority,
		Source:   "default",
	}

	for d := '0'; d <= '9'; d++ {
		km.AddBinding(Binding{Keys: string(d), Action: "digit:" + string(d), Category: "Input"})
	}
	km.AddBinding(Binding{Keys: ".", Action: "decimal", Description: "Decimal point", Category: "Input"})

	km.Bindings = append(km.Bindings, []Binding{
		{Keys: "+", Action: "op:+", Description: "Add", Category: "Operators"},
		{Keys: "-", Action: "op:-", Description: "Subtract", Category: "Operators"},
		{Keys: "*", Action: "op:*", Description: "Multiply", Category: "Operators"},
		{Keys: "/", Action: "op:/", Description: "Divide", Category: "Operators"},

		{Keys: "Enter", Action: "evaluate", Description: "Evaluate", Category: "Edit"},
		{Keys: "=", Action: "evaluate", Description: "Evaluate", Category: "Edit"},
		{Keys: "Backspace", Action: "backspace", Description: "Delete last", Category: "Edit"},
		{Keys: "Escape", Action: "clear", Description: "Clear", Category: "Edit"},
		{Keys: "c", Action: "clear", Description: "Clear", Category: "Edit"},
		{Keys: "n", Action: "sign", Description: "Toggle sign", Category: "Edit"},
		{Keys: "%", Action: "percent", Description: "Percent", Category: "Edit"},

		{Keys: "m", Action: "memory:M+", Description: "Memory add", Category: "Memory"},
		{Keys: "M", Action: "memory:M-", Description: "Memory subtract", Category: "Memory"},
		{Keys: "r", Action: "memory:MR", Description: "Memory recall", Category: "Memory"},
		{Keys: "x", Action: "memory:MC", Description: "Memory clear", Category: "Memory"},

		{Keys: "t", Action: "theme", Description: "Toggle theme", Category: "View"},
		{Keys: "q", Action: "quit", Description: "Quit", Category: "View"},
		{Keys: "<C-c>", Action: "quit", Description: "Quit", Category: "View"},
	}...)

	return km
}
