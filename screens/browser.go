//go:build !libretro

package screens

import (
	"context"
	"fmt"
	goimage "image"
	"log"
	"strings"

	"github.com/Skrokkio/LRscript/catalog"
	"github.com/Skrokkio/LRscript/download"
	"github.com/Skrokkio/LRscript/i18n"
	"github.com/Skrokkio/LRscript/imagecache"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/scraper"
	"github.com/Skrokkio/LRscript/storage"
	"github.com/Skrokkio/LRscript/style"
	"github.com/Skrokkio/LRscript/types"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// Section is the focused area of the game browser
type Section int

const (
	SectionList Section = iota
	SectionImages
	SectionInfo
	sectionCount
)

func (s Section) String() string {
	switch s {
	case SectionList:
		return "list"
	case SectionImages:
		return "images"
	case SectionInfo:
		return "info"
	default:
		return "unknown"
	}
}

// List movement steps
const (
	stepPage     = 40
	stepFast     = 20
	stepShoulder = 5
	stepInfoPage = 5
)

const defaultWrapChars = 60

// InfoLookup fetches game details from an info service
type InfoLookup interface {
	Lookup(ctx context.Context, urlTemplate, romName, name string) (*scraper.GameInfo, error)
}

// ImageFetcher fetches and caches artwork
type ImageFetcher interface {
	Fetch(ctx context.Context, url, dest string) (goimage.Image, error)
}

// GameImages holds the artwork of the selected game. Either may be nil.
type GameImages struct {
	Title  *ebiten.Image
	InGame *ebiten.Image
}

type lookupResult struct {
	seq    int
	info   *scraper.GameInfo
	title  goimage.Image
	inGame goimage.Image
}

// BrowserScreen lists the games of one platform with their artwork and
// details
type BrowserScreen struct {
	BaseScreen
	downloads *download.Manager
	infoSrc   InfoLookup
	imageSrc  ImageFetcher

	platform *storage.Platform
	games    *catalog.Catalog
	cursor   listCursor
	section  Section

	info       *scraper.GameInfo
	images     GameImages
	descScroll int
	wrapChars  int

	results chan lookupResult
	seq     int
	pending bool
}

// NewBrowserScreen creates the game browser
func NewBrowserScreen(callback types.ScreenCallback, downloads *download.Manager, infoSrc InfoLookup, imageSrc ImageFetcher) *BrowserScreen {
	s := &BrowserScreen{
		downloads: downloads,
		infoSrc:   infoSrc,
		imageSrc:  imageSrc,
		games:     catalog.New(nil),
		wrapChars: defaultWrapChars,
		results:   make(chan lookupResult, 4),
	}
	s.InitBase(callback)
	return s
}

func resolve(p string) string {
	if p == "" {
		return ""
	}
	return storage.ResolvePath(p)
}

// SetPlatform loads the game list of p and resets the view. Lookups still
// in flight for the previous platform are discarded.
func (s *BrowserScreen) SetPlatform(p *storage.Platform) {
	s.platform = p
	s.games = catalog.Load(resolve(p.XML))
	s.cursor = listCursor{}
	s.cursor.SetCount(s.games.Len())
	s.section = SectionList
	s.info = nil
	s.images = GameImages{}
	s.descScroll = 0
	s.seq++
	s.pending = false
	log.Printf("Browsing %s: %d rows", p.Name, s.games.Len())
}

// Platform returns the platform being browsed
func (s *BrowserScreen) Platform() *storage.Platform {
	return s.platform
}

// Selected returns the selected row index
func (s *BrowserScreen) Selected() int {
	return s.cursor.index
}

// Section returns the focused section
func (s *BrowserScreen) Section() Section {
	return s.section
}

// Info returns the details shown for the last looked up game, or nil
func (s *BrowserScreen) Info() *scraper.GameInfo {
	return s.info
}

// Images returns the artwork of the last looked up game
func (s *BrowserScreen) Images() GameImages {
	return s.images
}

// LookupPending reports whether a lookup is in flight
func (s *BrowserScreen) LookupPending() bool {
	return s.pending
}

// DescriptionScroll returns the first visible description line
func (s *BrowserScreen) DescriptionScroll() int {
	return s.descScroll
}

func (s *BrowserScreen) visible() int {
	return s.visibleRows(style.HeaderHeight*2 + style.StatusBarHeight + style.DefaultPadding*3)
}

// HandleAction implements types.Screen
func (s *BrowserScreen) HandleAction(a joystick.Action) types.Signal {
	if s.platform == nil {
		return types.None
	}

	switch a {
	case joystick.ActionSectionPrev:
		s.section = (s.section + sectionCount - 1) % sectionCount
		s.requestRebuild()
		return types.None
	case joystick.ActionSectionNext:
		s.section = (s.section + 1) % sectionCount
		s.requestRebuild()
		return types.None
	case joystick.ActionDownloadROM:
		s.requestDownload()
		return types.None
	}

	switch s.section {
	case SectionList:
		s.handleList(a)
	case SectionInfo:
		s.handleInfo(a)
	}
	return types.None
}

func (s *BrowserScreen) handleList(a joystick.Action) {
	delta := 0
	switch a {
	case joystick.ActionUp:
		delta = -1
	case joystick.ActionDown:
		delta = 1
	case joystick.ActionLeft:
		delta = -stepPage
	case joystick.ActionRight:
		delta = stepPage
	case joystick.ActionFastScrollUp, joystick.ActionScrollUp:
		delta = -stepFast
	case joystick.ActionFastScrollDown, joystick.ActionScrollDown:
		delta = stepFast
	case joystick.ActionL1FastScrollUp:
		delta = -stepShoulder
	case joystick.ActionR1FastScrollDown:
		delta = stepShoulder
	case joystick.ActionConfirm:
		if g, ok := s.games.Game(s.cursor.index); ok {
			s.startLookup(g)
		}
		return
	}
	if delta != 0 && s.cursor.Move(delta, s.visible()) {
		s.requestRebuild()
	}
}

func (s *BrowserScreen) handleInfo(a joystick.Action) {
	prev := s.descScroll
	switch a {
	case joystick.ActionUp:
		s.descScroll--
	case joystick.ActionDown:
		s.descScroll++
	case joystick.ActionScrollUp, joystick.ActionL1FastScrollUp:
		s.descScroll -= stepInfoPage
	case joystick.ActionScrollDown, joystick.ActionR1FastScrollDown:
		s.descScroll += stepInfoPage
	}
	s.descScroll = clamp(s.descScroll, 0, len(s.descriptionLines())-1)
	if s.descScroll != prev {
		s.requestRebuild()
	}
}

func (s *BrowserScreen) descriptionLines() []string {
	if s.info == nil {
		return nil
	}
	return scraper.WrapText(s.info.Description, s.wrapChars)
}

// SelectedRom returns the game on the selected row
func (s *BrowserScreen) SelectedRom() (catalog.Game, bool) {
	return s.games.Game(s.cursor.index)
}

func (s *BrowserScreen) requestDownload() {
	g, ok := s.SelectedRom()
	if !ok || s.platform.ROM == "" {
		return
	}
	info := download.NewInfo(g.Name, s.games.FullName(g.Name), s.platform.ROM, resolve(s.platform.RomsPath))
	if s.downloads.Request(info) {
		s.requestRebuild()
	}
}

// CopySelection puts the selected rom name on the clipboard
func (s *BrowserScreen) CopySelection() {
	g, ok := s.SelectedRom()
	if !ok {
		return
	}
	if style.CopyText(g.Name) {
		s.notify(i18n.T("Copied %s", g.Name))
	} else {
		s.notify(i18n.T("Clipboard not available"))
	}
}

func (s *BrowserScreen) startLookup(g catalog.Game) {
	s.seq++
	seq := s.seq
	p := *s.platform
	s.info = scraper.Placeholder(g.Name, g.Description)
	s.images = GameImages{}
	s.descScroll = 0
	s.pending = true
	s.notify(i18n.T("Searching..."))
	s.requestRebuild()

	go func() {
		ctx := context.Background()
		res := lookupResult{seq: seq}
		info, err := s.infoSrc.Lookup(ctx, p.Info, g.Name, g.Description)
		if err != nil {
			log.Printf("Failed to look up %s: %v", g.Name, err)
			info = scraper.Placeholder(g.Name, g.Description)
		}
		res.info = info

		cacheDir := resolve(p.CachePath)
		res.title = s.fetchImage(ctx, p.Title, g.Name, cacheDir, imagecache.KindTitle)
		res.inGame = s.fetchImage(ctx, p.InGame, g.Name, cacheDir, imagecache.KindInGame)
		s.results <- res
	}()
}

func (s *BrowserScreen) fetchImage(ctx context.Context, tmpl, rom, cacheDir, kind string) goimage.Image {
	if tmpl == "" || cacheDir == "" {
		return nil
	}
	url := scraper.EnsureScheme(storage.ExpandTemplate(tmpl, rom))
	img, err := s.imageSrc.Fetch(ctx, url, imagecache.Path(cacheDir, rom, kind))
	if err != nil {
		log.Printf("Failed to fetch %s image for %s: %v", kind, rom, err)
		return nil
	}
	return img
}

// Update applies finished lookups. Results of superseded lookups are
// dropped.
func (s *BrowserScreen) Update() {
	for {
		select {
		case res := <-s.results:
			if res.seq != s.seq {
				continue
			}
			s.applyLookup(res)
		default:
			return
		}
	}
}

func (s *BrowserScreen) applyLookup(res lookupResult) {
	s.pending = false
	s.info = res.info
	s.images = GameImages{}
	if res.title != nil {
		s.images.Title = style.ScaleImage(res.title, style.ArtWidth, style.ArtHeight/2)
	}
	if res.inGame != nil {
		s.images.InGame = style.ScaleImage(res.inGame, style.ArtWidth, style.ArtHeight/2)
	}
	s.descScroll = 0
	s.requestRebuild()
}

// Build creates the browser UI
func (s *BrowserScreen) Build() *widget.Container {
	root := style.ScreenContainer()
	content := style.ScreenContentContainer([]bool{false, true, false})

	content.AddChild(s.buildHeader())

	body := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
		)),
	)
	listWidth := s.windowWidth() - style.ArtWidth - style.DefaultPadding*3
	body.AddChild(s.buildList(listWidth))
	body.AddChild(s.buildSidePanel())
	content.AddChild(body)

	hint := i18n.T("L/R: section   A: details   Space: download   C: copy   Esc: back")
	content.AddChild(style.CenteredLabel(hint, style.TextSecondary))

	root.AddChild(content)
	return root
}

func (s *BrowserScreen) buildHeader() *widget.Container {
	header := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.DefaultSpacing),
		)),
	)
	name := ""
	if s.platform != nil {
		name = s.platform.Name
	}
	header.AddChild(style.Title(name))

	labels := map[Section]string{
		SectionList:   i18n.T("Games"),
		SectionImages: i18n.T("Images"),
		SectionInfo:   i18n.T("Info"),
	}
	for sec := SectionList; sec < sectionCount; sec++ {
		sec := sec
		header.AddChild(style.SelectableButton(labels[sec], sec == s.section, func(args *widget.ButtonClickedEventArgs) {
			s.section = sec
			s.requestRebuild()
		}))
	}

	count := ""
	if s.games.Err() == nil && s.games.Len() > 0 {
		count = fmt.Sprintf("%d/%d", s.cursor.index+1, s.games.Len())
	}
	header.AddChild(style.CenteredLabel(count, style.TextSecondary))
	return header
}

func (s *BrowserScreen) buildList(width int) *widget.Container {
	list := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
		)),
	)
	if s.games.Len() == 0 {
		list.AddChild(style.EmptyState(i18n.T("No games")))
		return list
	}

	textColor := style.Text
	if s.games.Err() != nil {
		textColor = style.Highlight
	}
	start, end := s.cursor.Window(s.visible())
	rows := s.games.Rows()
	for i := start; i < end; i++ {
		selected := i == s.cursor.index
		bg := style.AlternatingRowColor(i)
		if selected {
			bg = style.Primary
			if s.section != SectionList {
				bg = style.Border
			}
		}
		label, _ := style.TruncateToWidth(rows[i], *style.FontFace(), float64(width-style.DefaultPadding*2))
		list.AddChild(style.TableCellWithBackground(label, width, style.ListRowHeight, textColor, bg))
	}
	return list
}

func (s *BrowserScreen) buildSidePanel() *widget.Container {
	panel := style.Panel(style.Surface, style.SmallSpacing, style.SmallSpacing)

	imagesBorder := style.Background
	if s.section == SectionImages {
		imagesBorder = style.Accent
	}
	frame := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(imagesBorder)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.TinySpacing)),
			widget.RowLayoutOpts.Spacing(style.TinySpacing),
		)),
	)
	preview := i18n.T("IMAGE PREVIEW")
	frame.AddChild(style.ImageBox(s.images.Title, style.ArtWidth, style.ArtHeight/2, preview))
	frame.AddChild(style.ImageBox(s.images.InGame, style.ArtWidth, style.ArtHeight/2, preview))
	panel.AddChild(frame)

	panel.AddChild(s.buildInfo())
	return panel
}

func (s *BrowserScreen) buildInfo() *widget.Container {
	infoBg := style.Surface
	if s.section == SectionInfo {
		infoBg = style.Background
	}
	box := style.Panel(infoBg, style.SmallSpacing, style.TinySpacing)

	if s.info == nil {
		box.AddChild(style.Label(i18n.T("Press A to load game details"), style.TextSecondary))
		return box
	}

	if w := style.MeasureWidth("n"); w > 0 {
		s.wrapChars = int(float64(style.ArtWidth-style.SmallSpacing*2) / w)
	}

	title, _ := style.TruncateToWidth(s.info.Title, *style.FontFace(), float64(style.ArtWidth))
	box.AddChild(style.Label(title, style.Primary))
	box.AddChild(style.Label(i18n.T("Year: %s", s.info.Year), style.Text))
	box.AddChild(style.Label(i18n.T("Manufacturer: %s", s.info.Manufacturer), style.Text))
	box.AddChild(style.Label(i18n.T("Clone of: %s", s.info.CloneOf), style.Text))
	if s.pending {
		box.AddChild(style.Label(i18n.T("Searching..."), style.Highlight))
	}

	lines := s.descriptionLines()
	reserved := style.HeaderHeight*3 + style.ArtHeight + style.ListRowHeight*5
	n := rowsFitting(s.windowHeight()-reserved, style.ListRowHeight*3/4)
	start := clamp(s.descScroll, 0, len(lines))
	end := start + n
	if end > len(lines) {
		end = len(lines)
	}
	box.AddChild(style.Label(strings.Join(lines[start:end], "\n"), style.TextSecondary))
	return box
}
