package persona

import (
	"errors"
	"strings"
)

const (
	titleMarker       = "TITLE:"
	descriptionMarker = "DESCRIPTION:"
)

var (
	ErrTitleAbsent       = errors.New("reply has no TITLE: line")
	ErrDescriptionAbsent = errors.New("reply has no DESCRIPTION: marker")
)

// Reply is the generated title and description for one activity.
type Reply struct {
	Title       string
	Description string
}

// ParseReply extracts the title from the first line starting with "TITLE:"
// and the description from everything after the first "DESCRIPTION:", so
// multi-line descriptions survive. A missing marker leaves its field empty and
// is reported through ErrTitleAbsent or ErrDescriptionAbsent; the partial
// Reply is still returned.
func ParseReply(text string) (Reply, error) {
	var (
		reply Reply
		errs  []error
	)

	foundTitle := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, titleMarker) {
			reply.Title = strings.TrimSpace(strings.TrimPrefix(line, titleMarker))
			foundTitle = true
			break
		}
	}
	if !foundTitle {
		errs = append(errs, ErrTitleAbsent)
	}

	if idx := strings.Index(text, descriptionMarker); idx >= 0 {
		reply.Description = strings.TrimSpace(text[idx+len(descriptionMarker):])
	} else {
		errs = append(errs, ErrDescriptionAbsent)
	}

	return reply, errors.Join(errs...)
}
