package fhir_dto

type Patient struct {
	ResourceType         string          `json:"resourceType"`
	ID                   string          `json:"id,omitempty"`
	Active               bool            `json:"active,omitempty"`
	Identifier           []Identifier    `json:"identifier,omitempty"`
	Name                 []HumanName     `json:"name,omitempty"`
	Telecom              []ContactPoint  `json:"telecom,omitempty"`
	Gender               string          `json:"gender,omitempty"`
	BirthDate            string          `json:"birthDate,omitempty"`
	Address              []Address       `json:"address,omitempty"`
	Photo                []Attachment    `json:"photo,omitempty"`
	Communication        []Communication `json:"communication,omitempty"`
	ManagingOrganization *Reference      `json:"managingOrganization,omitempty"`
	Extension            []Extension     `json:"extension,omitempty"`
}
