package model

// Promoter is the person a contract is generated for.
type Promoter struct {
	ID             string
	NameEn         string
	NameAr         string
	IDCardNumber   string
	PassportNumber string
	Nationality    string
	Email          string
	Mobile         string
	IDCardURL      string
	PassportURL    string
	SignatureURL   string
}

// Party is a company or individual signing a contract.
type Party struct {
	ID        string
	NameEn    string
	NameAr    string
	CRNumber  string
	Type      string
	Address   string
	Email     string
	Phone     string
	LogoURL   string
	StampURL  string
	Signatory string
}
