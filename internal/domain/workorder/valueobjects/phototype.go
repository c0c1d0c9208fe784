package valueobjects

import "fmt"

// PhotoKind classifies when in the lifecycle a photo was attached.
type PhotoKind string

const (
	PhotoKindInitial    PhotoKind = "initial"
	PhotoKindInProgress PhotoKind = "in_progress"
	PhotoKindCompletion PhotoKind = "completion"
)

var validPhotoKinds = map[PhotoKind]bool{
	PhotoKindInitial:    true,
	PhotoKindInProgress: true,
	PhotoKindCompletion: true,
}

func (k PhotoKind) String() string {
	return string(k)
}

func (k PhotoKind) IsValid() bool {
	return validPhotoKinds[k]
}

func (k PhotoKind) IsInitial() bool {
	return k == PhotoKindInitial
}

func NewPhotoKind(s string) (PhotoKind, error) {
	k := PhotoKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid photo kind: %s", s)
	}
	return k, nil
}

// JobSize is staff's triage classification of a pending work order.
type JobSize string

const (
	JobSizeSmall JobSize = "small"
	JobSizeLarge JobSize = "large"
)

func (j JobSize) IsValid() bool {
	return j == JobSizeSmall || j == JobSizeLarge
}

func (j JobSize) String() string {
	return string(j)
}

func NewJobSize(s string) (JobSize, error) {
	j := JobSize(s)
	if !j.IsValid() {
		return "", fmt.Errorf("invalid job size: %s", s)
	}
	return j, nil
}
