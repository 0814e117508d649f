package domain

type Business struct {
	ID      string
	UserID  string
	Details BusinessDetails
}

type BusinessDetails struct {
	CompanyName        string `json:"companyName"`
	IndustrySector     string `json:"industrySector"`
	SubSector          string `json:"subSector"`
	Location           string `json:"location"`
	PositionTitle      string `json:"positionTitle"`
	LegalStructure     string `json:"legalStructure"`
	EstablishmentYear  string `json:"establishmentYear"`
	ProductsOrServices string `json:"productsOrServices"`
	BriefDescription   string `json:"briefDescription"`
	Website            string `json:"web,omitempty"`
}
