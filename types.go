package iiifas

const (
	IIIFPresentationContext = "http://iiif.io/api/presentation/2/context.json"
	ActivityStreamsContext  = "https://www.w3.org/ns/activitystreams"
)

const (
	OrderedCollection     = "OrderedCollection"
	OrderedCollectionPage = "OrderedCollectionPage"
)

const (
	DefaultVerb = "Update"
)

// Context is the JSON-LD context attached to every collection document.
var Context = []string{
	IIIFPresentationContext,
	ActivityStreamsContext,
}

// Reference points at another collection document.
type Reference struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Object is the summary of the IIIF resource an Event refers to.
type Object struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Label  any    `json:"label,omitempty"`
	Within string `json:"within"`
}

// Event is the ActivityStreams activity emitted for one collection member.
type Event struct {
	ID         string  `json:"id,omitempty"`
	Type       string  `json:"type"`
	Actor      string  `json:"actor,omitempty"`
	Instrument string  `json:"instrument,omitempty"`
	Object     Object  `json:"object"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    string  `json:"endTime"`
	Published  *string `json:"published,omitempty"`
}

type Page struct {
	Context      []string   `json:"@context"`
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	PartOf       Reference  `json:"partOf"`
	Prev         *Reference `json:"prev,omitempty"`
	Next         *Reference `json:"next,omitempty"`
	OrderedItems []Event    `json:"orderedItems"`
}

type TopCollection struct {
	Context []string  `json:"@context"`
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Label   string    `json:"label,omitempty"`
	Total   int       `json:"total"`
	First   Reference `json:"first"`
	Last    Reference `json:"last"`
}
