package standalone

import (
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/user-none/bigbox/standalone/style"
)

// NotificationType determines the visual style of the notification
type NotificationType int

const (
	NotificationTypeDefault NotificationType = iota // Small, bottom-right
	NotificationTypeError                           // Bottom-right with a red edge, stays longer
)

// Default display times
const (
	notifyDefaultDuration = 3 * time.Second
	notifyErrorDuration   = 5 * time.Second
)

// Notification displays temporary messages on screen. Show may be called
// from any goroutine.
type Notification struct {
	mu         sync.Mutex
	message    string
	startTime  time.Time
	duration   time.Duration
	notifyType NotificationType

	// Reused between frames
	bg *ebiten.Image
}

// NewNotification creates a new notification system
func NewNotification() *Notification {
	return &Notification{}
}

// Show displays a notification message
func (n *Notification) Show(message string, duration time.Duration, kind NotificationType) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.startTime = time.Now()
	n.duration = duration
	n.notifyType = kind
}

// ShowDefault displays a notification for three seconds
func (n *Notification) ShowDefault(message string) {
	n.Show(message, notifyDefaultDuration, NotificationTypeDefault)
}

// ShowError displays an error notification
func (n *Notification) ShowError(message string) {
	n.Show(message, notifyErrorDuration, NotificationTypeError)
}

// IsVisible returns whether the notification is currently visible
func (n *Notification) IsVisible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visibleLocked(time.Now())
}

func (n *Notification) visibleLocked(now time.Time) bool {
	return n.message != "" && now.Sub(n.startTime) < n.duration
}

// Clear removes the current notification
func (n *Notification) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = ""
}

// Draw renders the notification in the bottom-right corner
func (n *Notification) Draw(screen *ebiten.Image) {
	n.mu.Lock()
	if !n.visibleLocked(time.Now()) {
		n.mu.Unlock()
		return
	}
	message := n.message
	kind := n.notifyType
	n.mu.Unlock()

	bounds := screen.Bounds()
	face := *style.FontFace()

	maxText := float64(bounds.Dx()/2 - style.OverlayPadding*2)
	message, _ = style.TruncateToWidth(message, face, maxText)
	textWidth, textHeight := text.Measure(message, face, 0)

	padding := style.OverlayPadding
	edge := 0
	if kind == NotificationTypeError {
		edge = style.Px(4)
	}
	bgWidth := int(textWidth) + padding*2 + edge
	bgHeight := int(textHeight) + padding*2

	margin := style.OverlayMargin
	bgX := bounds.Dx() - bgWidth - margin
	bgY := bounds.Dy() - bgHeight - margin

	if n.bg == nil || n.bg.Bounds().Dx() < bgWidth || n.bg.Bounds().Dy() < bgHeight {
		n.bg = ebiten.NewImage(bgWidth, bgHeight)
	}
	n.bg.Clear()
	overlayBg := style.OverlayBackground
	overlayBg.A = 200
	n.bg.Fill(overlayBg)
	if edge > 0 {
		n.bg.SubImage(image.Rect(0, 0, edge, bgHeight)).(*ebiten.Image).Fill(style.Primary)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(n.bg.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+edge+padding), float64(bgY+padding))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, message, face, textOpts)
}
