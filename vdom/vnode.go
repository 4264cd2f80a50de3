// Package vdom holds the virtual DOM nodes components render to.
package vdom

import "maps"

// VNode represents a virtual DOM node.
type VNode struct {
	Tag        string         // The HTML tag name
	Attributes map[string]any // The attributes of the node
	Children   []*VNode       // The child nodes
	Content    string         // The content of the node
	OnClick    func()         // Optional click event handler
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var onClick func()
	if attributes != nil {
		if v, ok := attributes["onClick"]; ok {
			if f, ok := v.(func()); ok {
				onClick = f
				// Remove from attributes so it doesn't get rendered as an HTML attribute
				delete(attributes, "onClick")
			}
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
		OnClick:    onClick,
	}
}

// Clone returns a shallow copy of the node with its own attribute map. Children are
// shared.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}

	clone := *v
	clone.Attributes = maps.Clone(v.Attributes)
	if clone.Attributes == nil {
		clone.Attributes = make(map[string]any)
	}

	return &clone
}

// Attr returns the attribute stored under name.
func (v *VNode) Attr(name string) (any, bool) {
	if v == nil || v.Attributes == nil {
		return nil, false
	}

	value, ok := v.Attributes[name]

	return value, ok
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Button creates a <button> VNode with the given children and allows passing attributes.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}
