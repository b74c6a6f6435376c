package vocab

import "github.com/ovasilenko/canonry/internal/model"

// Template is a predefined master-entity template with its standard
// field set, chosen during consolidation to host requirements with
// minimal customization.
type Template struct {
	Purpose     string
	Fields      []string
	FieldGroups []string
	Identifiers []string
}

// FieldGroupDef is a standard reusable 1-to-many sub-structure.
type FieldGroupDef struct {
	Purpose string
	Fields  []string
}

// Templates returns the standard entity templates keyed by role.
func Templates() map[model.EntityRole]Template {
	return map[model.EntityRole]Template{
		model.RolePerson: {
			Purpose: "Represents individuals/people in the system",
			Fields: []string{
				"FirstName", "LastName", "MiddleName", "NamePrefix", "NameSuffix",
				"FullName", "DateOfBirth", "Gender", "MaritalStatus",
				"SSN", "TaxID", "PreferredLanguage", "DeceasedDate", "DeceasedFlag",
			},
			FieldGroups: []string{"Address", "Phone", "Email", "Identifier"},
			Identifiers: []string{"PersonId", "SSN", "TaxID"},
		},
		model.RoleOrganization: {
			Purpose: "Represents organizations, companies, institutions",
			Fields: []string{
				"OrganizationName", "LegalName", "DBA", "TaxID", "EIN",
				"OrganizationType", "Industry", "Status", "FoundedDate",
				"Website", "Description",
			},
			FieldGroups: []string{"Address", "Phone", "Email", "Identifier"},
			Identifiers: []string{"OrganizationId"},
		},
		model.RoleProduct: {
			Purpose: "Represents products or items",
			Fields: []string{
				"ProductName", "ProductCode", "SKU", "Description",
				"Category", "Brand", "Status", "Price", "UnitOfMeasure",
			},
			FieldGroups: []string{"Identifier"},
			Identifiers: []string{"ProductId"},
		},
	}
}

// FieldGroups returns the standard field-group definitions.
func FieldGroups() map[string]FieldGroupDef {
	return map[string]FieldGroupDef{
		"Address": {
			Purpose: "Stores address information (1-to-many relationship)",
			Fields: []string{
				"AddressLine1", "AddressLine2", "City", "State", "PostalCode",
				"Country", "AddressType", "PrimaryFlag", "StartDate", "EndDate",
				"County", "Region", "Latitude", "Longitude",
			},
		},
		"Phone": {
			Purpose: "Stores phone/contact number information (1-to-many relationship)",
			Fields: []string{
				"PhoneNumber", "PhoneType", "PrimaryFlag", "CountryCode",
				"AreaCode", "Extension", "StartDate", "EndDate", "DoNotCallFlag",
			},
		},
		"Email": {
			Purpose: "Stores email address information (1-to-many relationship)",
			Fields: []string{
				"EmailAddress", "EmailType", "PrimaryFlag", "StartDate", "EndDate",
				"DoNotEmailFlag", "BounceFlag",
			},
		},
		"Identifier": {
			Purpose: "Stores various identifier values (1-to-many relationship)",
			Fields: []string{
				"IdentifierValue", "IdentifierType", "PrimaryFlag", "Issuer",
				"StartDate", "EndDate", "VerificationStatus",
			},
		},
	}
}

// SuppressedFields are identity-sensitive identifiers excluded from
// the general attribute list and tracked separately as identifiers.
func SuppressedFields() []string {
	return []string{"SSN", "TaxID"}
}

// StructuralFields are exempt from custom-field traceability: they are
// required by the model itself, not by any requirement.
func StructuralFields() []string {
	return []string{"SourceSystemKey"}
}

// DropdownFields is the fixed set of fields the diagram renderer
// annotates as enumerated/dropdown-valued.
func DropdownFields() map[string]bool {
	fields := []string{
		"Gender", "MaritalStatus", "AddressType", "PhoneType", "EmailType",
		"IdentifierType", "Status", "Type", "PrimaryFlag", "DoNotCallFlag",
		"DoNotEmailFlag", "BounceFlag", "VerificationStatus", "OrganizationType",
		"RoleType", "RelationshipType", "EmploymentStatus", "Classification",
		"PreferredLanguage", "DeceasedFlag",
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
