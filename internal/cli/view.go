package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/grid"
)

func (c *CLI) viewCommand() *cobra.Command {
	var (
		motifPath string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "view [tiles.txt]",
		Short: "Browse the stitched image in the terminal",
		Long: `Solve the puzzle and open an interactive viewer of the stitched image.

Keys:
  arrows/hjkl  scroll
  o / O        next / previous orientation
  m            toggle motif highlighting
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], motifPath, noCache)
		},
	}

	cmd.Flags().StringVar(&motifPath, "motif", "", "motif file (default: sea monster)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the placement cache")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, motifPath string, noCache bool) error {
	opts, err := c.solveOptions(input, motifPath, -1)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Solving "+input+"...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	m := newImageModel(res.Image, res.Scan.Mask(res.Image), res.Orientation)
	m.title = fmt.Sprintf("%s · %d %s · roughness %d", input, res.Matches, res.Scan.Motif.Name, res.Roughness)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// imageModel is the bubbletea model for the image viewer. The image and mask
// are kept in their stitched orientation and transformed on display.
type imageModel struct {
	title       string
	image, mask grid.Bitmap
	orientation grid.Orientation
	showMask    bool

	// viewport
	top, left     int
	height, width int
}

func newImageModel(image, mask grid.Bitmap, o grid.Orientation) imageModel {
	return imageModel{
		image:       image,
		mask:        mask,
		orientation: o,
		showMask:    true,
		height:      24,
		width:       80,
	}
}

func (m imageModel) Init() tea.Cmd { return nil }

func (m imageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.top--
		case "down", "j":
			m.top++
		case "left", "h":
			m.left--
		case "right", "l":
			m.left++
		case "o":
			m.orientation = (m.orientation + 1) % grid.Count
		case "O":
			m.orientation = (m.orientation + grid.Count - 1) % grid.Count
		case "m":
			m.showMask = !m.showMask
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-4, 1)
		m.width = max(msg.Width, 1)
	}
	m.clamp()
	return m, nil
}

// clamp keeps the viewport inside the oriented image. Orientation changes
// can swap width and height, so it runs after every update.
func (m *imageModel) clamp() {
	w, h := m.image.Width, m.image.Height
	if m.orientation.Rotations()%2 == 1 {
		w, h = h, w
	}
	m.top = max(min(m.top, h-m.height), 0)
	m.left = max(min(m.left, w-m.width), 0)
}

// visible returns the oriented image and mask cropped to the viewport.
func (m imageModel) visible() (grid.Bitmap, grid.Bitmap) {
	img := grid.Apply(m.image, m.orientation)
	w := min(m.width, img.Width-m.left)
	h := min(m.height, img.Height-m.top)
	if w <= 0 || h <= 0 {
		return grid.Bitmap{}, grid.Bitmap{}
	}
	img = img.Crop(m.left, m.top, w, h)
	var mask grid.Bitmap
	if m.showMask && m.mask.Width > 0 {
		mask = grid.Apply(m.mask, m.orientation).Crop(m.left, m.top, w, h)
	}
	return img, mask
}

func (m imageModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s  ←↑↓→ scroll  o orientation  m highlight  q quit", m.orientation)))
	b.WriteString("\n\n")
	img, mask := m.visible()
	b.WriteString(preview(img, mask))
	return b.String()
}
