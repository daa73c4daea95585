package dataset

const (
	Width  = 28
	Height = 28
	Pixels = Width * Height

	// Classes is the number of digits a label can take.
	Classes = 10

	TrainingSize = 8000
	TestingSize  = 2000
)

// Entry is a labelled image as handed over by a Provider. Output is one-hot
// encoded: an image of a 5 has Output [0 0 0 0 0 1 0 0 0 0].
type Entry struct {
	Input  []float64
	Output []float64
}

// Set is a pair of partitions supplied by a Provider.
type Set struct {
	Training []Entry
	Test     []Entry
}

// Provider supplies labelled images already resident in memory.
type Provider interface {
	Set(training, testing int) (Set, error)
}

// Dataset holds index aligned images and labels. Images[i] is labelled
// Labels[i].
type Dataset struct {
	Images [][]float64
	Labels []int
}

// Len returns the number of examples in the dataset.
func (d Dataset) Len() int { return len(d.Labels) }

// Split converts one-hot entries into parallel image and label slices.
//
// A label is the position of the first 1 in the entry's Output. Malformed
// vectors are not checked: an Output without a 1 yields -1.
func Split(entries []Entry) Dataset {
	retVal := Dataset{
		Images: make([][]float64, 0, len(entries)),
		Labels: make([]int, 0, len(entries)),
	}
	for _, e := range entries {
		retVal.Images = append(retVal.Images, e.Input)
		retVal.Labels = append(retVal.Labels, indexOfOne(e.Output))
	}
	return retVal
}

// OneHot encodes label as a vector of the given length.
func OneHot(label, classes int) []float64 {
	retVal := make([]float64, classes)
	if label >= 0 && label < classes {
		retVal[label] = 1
	}
	return retVal
}

func indexOfOne(a []float64) int {
	for i, v := range a {
		if v == 1 {
			return i
		}
	}
	return -1
}
