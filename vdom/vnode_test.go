package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVNodeExtractsClickHandler(t *testing.T) {
	clicked := false

	node := Button("go", map[string]any{"onClick": func() { clicked = true }, "class": "primary"})

	require.NotNil(t, node.OnClick)
	_, ok := node.Attr("onClick")
	assert.False(t, ok)

	node.OnClick()
	assert.True(t, clicked)
	assert.Equal(t, "button", node.Tag)
	assert.Equal(t, "go", node.Content)
}

func TestCloneCopiesAttributes(t *testing.T) {
	child := Paragraph("child", nil)
	original := Div(map[string]any{"class": "block"}, child)

	clone := original.Clone()
	clone.Attributes["class"] = "other"
	clone.Attributes["id"] = "x"

	assert.Equal(t, "block", original.Attributes["class"])
	_, ok := original.Attr("id")
	assert.False(t, ok)
	assert.Same(t, child, clone.Children[0])

	empty := Div(nil).Clone()
	assert.NotNil(t, empty.Attributes)

	var none *VNode
	assert.Nil(t, none.Clone())
	_, ok = none.Attr("class")
	assert.False(t, ok)
}
