package console

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"operator_console/pkg/view"
)

// regions
const (
	RegionAccounts  = "accounts"
	RegionChatrooms = "chatrooms"
	RegionMessages  = "messages"
	RegionComposer  = "composer"
	RegionAiReply   = "ai_reply"
	RegionSettings  = "settings"
)

// Surface controller 的畫面輸出；root 為 nil 代表清空該區塊
type Surface interface {
	Render(region string, root *view.Node)
}

// Notifier 使用者必須看到的提示
type Notifier interface {
	Alert(message string)
}

// Terminal 終端機 surface + notifier
// live 模式下每次 Render 直接輸出，否則只保留最新畫面等 Print
type Terminal struct {
	out   io.Writer
	width int
	live  bool

	mu      sync.Mutex
	regions map[string]*view.Node
}

// NewTerminal create terminal surface
func NewTerminal(out io.Writer, width int, live bool) *Terminal {
	return &Terminal{
		out:     out,
		width:   width,
		live:    live,
		regions: make(map[string]*view.Node),
	}
}

// Render surface
func (t *Terminal) Render(region string, root *view.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if root == nil {
		delete(t.regions, region)
		return
	}
	t.regions[region] = root
	if t.live {
		t.writeLocked(region, root)
	}
}

// Alert notifier
func (t *Terminal) Alert(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "[알림] %s\n", message)
}

// Print 輸出指定區塊目前的畫面
func (t *Terminal) Print(regions ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(regions) == 0 {
		for region := range t.regions {
			regions = append(regions, region)
		}
		sort.Strings(regions)
	}
	for _, region := range regions {
		if root, ok := t.regions[region]; ok {
			t.writeLocked(region, root)
		}
	}
}

// Node 取得區塊目前的 view tree
func (t *Terminal) Node(region string) *view.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.regions[region]
}

func (t *Terminal) writeLocked(region string, root *view.Node) {
	fmt.Fprintf(t.out, "── %s ──\n%s\n", region, view.RenderText(root, t.width))
}
