package mainwindow

import "fyne.io/fyne/v2"

// channelLayout arranges label/slider/value triples in rows, giving the
// slider all width the two labels leave over.
type channelLayout struct{}

func (l *channelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	nameW, valueW := l.columnWidths(objects)
	rowH := size.Height / float32(len(objects)/3)

	for i := 0; i+2 < len(objects); i += 3 {
		y := float32(i/3) * rowH
		objects[i].Move(fyne.NewPos(0, y))
		objects[i].Resize(fyne.NewSize(nameW, rowH))

		sliderW := size.Width - nameW - valueW
		objects[i+1].Move(fyne.NewPos(nameW, y))
		objects[i+1].Resize(fyne.NewSize(sliderW, rowH))

		objects[i+2].Move(fyne.NewPos(nameW+sliderW, y))
		objects[i+2].Resize(fyne.NewSize(valueW, rowH))
	}
}

func (l *channelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	nameW, valueW := l.columnWidths(objects)
	var h, sliderW float32
	for i := 0; i+2 < len(objects); i += 3 {
		rowH := max(objects[i].MinSize().Height, objects[i+1].MinSize().Height, objects[i+2].MinSize().Height)
		h += rowH
		sliderW = max(sliderW, objects[i+1].MinSize().Width)
	}
	return fyne.NewSize(nameW+sliderW+valueW, h)
}

func (l *channelLayout) columnWidths(objects []fyne.CanvasObject) (nameW, valueW float32) {
	for i := 0; i+2 < len(objects); i += 3 {
		nameW = max(nameW, objects[i].MinSize().Width)
		valueW = max(valueW, objects[i+2].MinSize().Width)
	}
	return nameW, valueW
}
