package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	root := NewNode("Root", NewProperty("key", false, "value"))
	left := root.AddChild("Left", []Property{NewProperty("items", true, 1, 2, 3)})
	left.AddChild("Leaf", nil)
	root.AddChild("Right", nil)

	sb := &strings.Builder{}
	NewPrinter(sb).Print(root)

	expected := `Root key=value
├── Left items=(1, 2, 3)
│   └── Leaf
└── Right
`
	require.Equal(t, expected, sb.String())
}
