package runtime

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/vdom"
)

type counter struct {
	ComponentBase

	label    string
	count    int
	inits    int
	destroys int
	panics   bool
}

func (c *counter) OnInit() {
	c.inits++
	if c.panics {
		panic("init failed")
	}
}

func (c *counter) OnDestroy() { c.destroys++ }

func (c *counter) ApplyProps(source Component) {
	c.label = source.(*counter).label
}

func (c *counter) Render(r Renderer) *vdom.VNode {
	return vdom.Button(c.label, map[string]any{"onClick": func() {
		c.count++
		c.StateHasChanged()
	}})
}

type parent struct {
	ComponentBase

	show  bool
	label string
}

func (p *parent) Render(r Renderer) *vdom.VNode {
	if !p.show {
		return vdom.Div(nil)
	}

	return vdom.Div(nil, r.RenderChild("counter", &counter{label: p.label}))
}

func TestTreeKeepsInstancesAcrossPasses(t *testing.T) {
	// Arrange
	var mounted []*vdom.VNode

	root := &parent{show: true, label: "first"}
	tree := NewTree(root, func(n *vdom.VNode) { mounted = append(mounted, n) })

	// Act
	node := tree.RenderRoot()
	node.Children[0].OnClick()

	root.label = "second"
	tree.RequestRedraw()

	// Assert
	require.Len(t, mounted, 3)
	assert.Equal(t, 3, tree.Passes())
	assert.Equal(t, "second", tree.Current().Children[0].Content)
	assert.True(t, tree.Mounted("counter"))
}

func TestTreeRunsLifecycleHooks(t *testing.T) {
	root := &parent{show: true}
	tree := NewTree(root, nil)

	tree.RenderRoot()
	tree.RenderRoot()

	child := tree.instances["counter"].(*counter)
	assert.Equal(t, 1, child.inits)
	assert.Zero(t, child.destroys)

	root.show = false
	tree.RenderRoot()

	assert.Equal(t, 1, child.destroys)
	assert.False(t, tree.Mounted("counter"))
}

func TestTreeUnmount(t *testing.T) {
	root := &parent{show: true}
	tree := NewTree(root, nil)
	tree.RenderRoot()

	child := tree.instances["counter"].(*counter)

	tree.Unmount()
	tree.Unmount()

	assert.Equal(t, 1, child.destroys)
	assert.Nil(t, tree.Current())
	assert.Nil(t, tree.RenderRoot())

	tree.RequestRedraw()
	assert.Equal(t, 1, tree.Passes())
}

type eager struct {
	ComponentBase

	renders int
	limit   int
}

func (e *eager) Render(r Renderer) *vdom.VNode {
	e.renders++
	if e.renders < e.limit {
		r.RequestRedraw()
	}

	return vdom.Paragraph("eager", nil)
}

func TestTreeCoalescesRedrawsRequestedDuringRender(t *testing.T) {
	var buf bytes.Buffer

	console.Configure(console.Config{Level: zerolog.WarnLevel})
	console.SetOutput(&buf)

	for uc, tc := range map[string]struct {
		limit    int
		expected int
		warns    bool
	}{
		"settles":       {limit: 3, expected: 3},
		"never settles": {limit: 100, expected: maxRenderPasses, warns: true},
	} {
		t.Run(uc, func(t *testing.T) {
			buf.Reset()

			root := &eager{limit: tc.limit}
			tree := NewTree(root, nil)

			tree.RenderRoot()

			assert.Equal(t, tc.expected, root.renders)
			assert.Equal(t, tc.warns, bytes.Contains(buf.Bytes(), []byte("giving up")))
		})
	}
}

func TestTreeRecoversLifecyclePanics(t *testing.T) {
	var buf bytes.Buffer

	console.Configure(console.Config{Level: zerolog.WarnLevel})
	console.SetOutput(&buf)

	root := &counter{label: "boom", panics: true}
	tree := NewTree(root, nil)

	node := tree.RenderRoot()

	require.NotNil(t, node)
	assert.Equal(t, 1, root.inits)
	assert.Contains(t, buf.String(), "OnInit panic in component __root__")
}

func TestStateHasChangedWithoutRenderer(t *testing.T) {
	var buf bytes.Buffer

	console.Configure(console.Config{Level: zerolog.WarnLevel})
	console.SetOutput(&buf)

	c := &counter{}
	c.StateHasChanged()

	assert.Nil(t, c.Renderer())
	assert.Contains(t, buf.String(), "renderer is nil")
}
