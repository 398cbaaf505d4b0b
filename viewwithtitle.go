package textable

var _ View = viewWithTitle{}

// ViewWithTitle returns a View with the columns and cells
// of source but with a different title.
func ViewWithTitle(source View, title string) View {
	if v, ok := source.(viewWithTitle); ok {
		source = v.View
	}
	return viewWithTitle{View: source, title: title}
}

type viewWithTitle struct {
	View
	title string
}

func (v viewWithTitle) Title() string { return v.title }
