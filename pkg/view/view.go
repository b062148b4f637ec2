// Package view 宣告式 view tree，controller 把 state 轉成 Node 再交給 renderer。
package view

import (
	"strconv"
)

// Node view tree 節點
type Node struct {
	ID       string
	Type     string
	Props    map[string]string
	Children []*Node
}

// node types
const (
	TypeVBox     = "vbox"
	TypeHBox     = "hbox"
	TypeText     = "text"
	TypeButton   = "button"
	TypeCheckbox = "checkbox"
	TypeBadge    = "badge"
	TypeInput    = "input"
	TypeList     = "list"
	TypeItem     = "item"
	TypeModal    = "modal"
)

// N creates a new node with the given id and type.
func N(id, typ string) *Node {
	return &Node{
		ID:    id,
		Type:  typ,
		Props: make(map[string]string),
	}
}

// Prop sets a property on the node and returns it for chaining.
func (n *Node) Prop(k, v string) *Node {
	n.Props[k] = v
	return n
}

// PropInt sets an integer property.
func (n *Node) PropInt(k string, v int) *Node {
	n.Props[k] = strconv.Itoa(v)
	return n
}

// PropBool sets a boolean property.
func (n *Node) PropBool(k string, v bool) *Node {
	n.Props[k] = strconv.FormatBool(v)
	return n
}

// Text sets the "text" property.
func (n *Node) Text(s string) *Node {
	return n.Prop("text", s)
}

// Child appends child nodes and returns the parent for chaining.
func (n *Node) Child(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Bool 讀取 boolean prop
func (n *Node) Bool(k string) bool {
	v, _ := strconv.ParseBool(n.Props[k])
	return v
}

// VBox creates a vertical box layout node.
func VBox(id string, children ...*Node) *Node {
	return N(id, TypeVBox).Child(children...)
}

// HBox creates a horizontal box layout node.
func HBox(id string, children ...*Node) *Node {
	return N(id, TypeHBox).Child(children...)
}

// TextNode creates a text display node.
func TextNode(id, text string) *Node {
	return N(id, TypeText).Text(text)
}

// Button creates a button node; action 是 controller 對應的 handler 名稱
func Button(id, text, action string) *Node {
	return N(id, TypeButton).Text(text).Prop("action", action)
}

// Checkbox creates a checkbox node.
func Checkbox(id, label string, checked bool) *Node {
	return N(id, TypeCheckbox).Text(label).PropBool("checked", checked)
}

// Badge 小標記 (未讀數等)
func Badge(id, text string) *Node {
	return N(id, TypeBadge).Text(text)
}

// Input 輸入框
func Input(id, value, placeholder string) *Node {
	return N(id, TypeInput).Prop("value", value).Prop("placeholder", placeholder)
}

// List 列表容器
func List(id string, items ...*Node) *Node {
	return N(id, TypeList).Child(items...)
}

// Item 列表項目
func Item(id string, children ...*Node) *Node {
	return N(id, TypeItem).Child(children...)
}

// Modal 彈出視窗
func Modal(id, title string, children ...*Node) *Node {
	return N(id, TypeModal).Prop("title", title).Child(children...)
}

// Walk 深度優先走訪，fn 回傳 false 時停止往下
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find 依 id 找節點
func Find(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Texts 收集所有 text prop (依走訪順序)
func Texts(root *Node) []string {
	var out []string
	Walk(root, func(n *Node) bool {
		if t, ok := n.Props["text"]; ok && t != "" {
			out = append(out, t)
		}
		return true
	})
	return out
}
