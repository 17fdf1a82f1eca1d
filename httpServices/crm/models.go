package crm

// Contact is the CRM-side person record.
type Contact struct {
	ID         string   `json:"id,omitempty"`
	LocationID string   `json:"locationId,omitempty"`
	FirstName  string   `json:"firstName,omitempty"`
	LastName   string   `json:"lastName,omitempty"`
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Address1   string   `json:"address1,omitempty"`
	Source     string   `json:"source,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type CustomField struct {
	Key   string      `json:"key"`
	Value interface{} `json:"field_value"`
}

// Opportunity is the CRM-side pipeline record tied to one booking.
type Opportunity struct {
	ID            string        `json:"id,omitempty"`
	LocationID    string        `json:"locationId,omitempty"`
	PipelineID    string        `json:"pipelineId,omitempty"`
	ContactID     string        `json:"contactId,omitempty"`
	Name          string        `json:"name,omitempty"`
	Status        string        `json:"status,omitempty"`
	StageName     string        `json:"stageName,omitempty"`
	MonetaryValue float64       `json:"monetaryValue,omitempty"`
	CustomFields  []CustomField `json:"customFields,omitempty"`
}

// OpportunityStatusUpdate is the body pushed when a booking changes status.
type OpportunityStatusUpdate struct {
	Status    string `json:"status"`
	StageName string `json:"stageName"`
}

type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type contactEnvelope struct {
	Contact Contact `json:"contact"`
}

type contactsEnvelope struct {
	Contacts []Contact `json:"contacts"`
}

type opportunityEnvelope struct {
	Opportunity Opportunity `json:"opportunity"`
}

type locationEnvelope struct {
	Location Location `json:"location"`
}

type errorBody struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
	Error   string `json:"error"`
}
