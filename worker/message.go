package worker

// Request is a message from the UI to the worker. The set of requests is
// closed: PrepareDataset, RequestImage and TrainEpoch.
type Request interface {
	Kind() string
	isRequest()
}

// Response is a message from the worker to the UI. The set of responses is
// closed: Loaded, DatasetPrepared, CurrentImage, TrainedEpoch and Failed.
type Response interface {
	Kind() string
	isResponse()
}

// PrepareDataset asks the worker to load and split the dataset and create a
// fresh trainer.
type PrepareDataset struct{}

// RequestImage asks for one image of the training partition.
type RequestImage struct {
	Index int
}

// TrainEpoch asks for one pass of training over the training partition.
type TrainEpoch struct{}

// Loaded is posted once, when the worker is ready for requests.
type Loaded struct{}

// DatasetPrepared answers PrepareDataset with the partition sizes.
type DatasetPrepared struct {
	Training, Testing int
}

// CurrentImage answers RequestImage.
type CurrentImage struct {
	Pixels []float64
	Label  int
	Index  int
}

// TrainedEpoch answers TrainEpoch. Accuracy is measured on the testing
// partition after the epoch.
type TrainedEpoch struct {
	Epoch    int
	Loss     float64
	Accuracy float64
}

// Failed answers a request the worker could not serve.
type Failed struct {
	Request string // Kind of the failed request
	Reason  string
}

func (PrepareDataset) Kind() string { return "prepareDataset" }
func (RequestImage) Kind() string   { return "requestCurrentImage" }
func (TrainEpoch) Kind() string     { return "trainEpoch" }

func (Loaded) Kind() string          { return "loadedWorker" }
func (DatasetPrepared) Kind() string { return "datasetPrepared" }
func (CurrentImage) Kind() string    { return "currentImage" }
func (TrainedEpoch) Kind() string    { return "trainedEpoch" }
func (Failed) Kind() string          { return "failed" }

func (PrepareDataset) isRequest() {}
func (RequestImage) isRequest()   {}
func (TrainEpoch) isRequest()     {}

func (Loaded) isResponse()          {}
func (DatasetPrepared) isResponse() {}
func (CurrentImage) isResponse()    {}
func (TrainedEpoch) isResponse()    {}
func (Failed) isResponse()          {}
