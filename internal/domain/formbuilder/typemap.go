package formbuilder

import "github.com/ehr/formbuilder/pkg/fhirmodels"

// The two tables are intentionally not inverses: several FHIR types collapse
// onto one element type and vice versa.
var elementToFHIRType = map[ElementType]string{
	ElementText:       fhirmodels.ItemTypeString,
	ElementTextarea:   fhirmodels.ItemTypeText,
	ElementNumber:     fhirmodels.ItemTypeDecimal,
	ElementEmail:      fhirmodels.ItemTypeString,
	ElementSelect:     fhirmodels.ItemTypeChoice,
	ElementCheckbox:   fhirmodels.ItemTypeChoice,
	ElementRadio:      fhirmodels.ItemTypeChoice,
	ElementDate:       fhirmodels.ItemTypeDate,
	ElementGroup:      fhirmodels.ItemTypeGroup,
	ElementHeader:     fhirmodels.ItemTypeDisplay,
	ElementImage:      fhirmodels.ItemTypeDisplay,
	ElementYesNo:      fhirmodels.ItemTypeBoolean,
	ElementDateTime:   fhirmodels.ItemTypeDateTime,
	ElementTime:       fhirmodels.ItemTypeTime,
	ElementAttachment: fhirmodels.ItemTypeAttachment,
	ElementReference:  fhirmodels.ItemTypeReference,
	ElementQuantity:   fhirmodels.ItemTypeQuantity,
}

var fhirTypeToElement = map[string]ElementType{
	fhirmodels.ItemTypeString:     ElementText,
	fhirmodels.ItemTypeText:       ElementTextarea,
	fhirmodels.ItemTypeDecimal:    ElementNumber,
	fhirmodels.ItemTypeInteger:    ElementNumber,
	fhirmodels.ItemTypeBoolean:    ElementYesNo,
	fhirmodels.ItemTypeDate:       ElementDate,
	fhirmodels.ItemTypeDateTime:   ElementDateTime,
	fhirmodels.ItemTypeTime:       ElementTime,
	fhirmodels.ItemTypeChoice:     ElementSelect,
	fhirmodels.ItemTypeOpenChoice: ElementSelect,
	fhirmodels.ItemTypeGroup:      ElementGroup,
	fhirmodels.ItemTypeDisplay:    ElementHeader,
	fhirmodels.ItemTypeAttachment: ElementAttachment,
	fhirmodels.ItemTypeReference:  ElementReference,
	fhirmodels.ItemTypeQuantity:   ElementQuantity,
}

// ElementTypeToFHIRType maps an element type to a Questionnaire item type.
// Unknown element types map to "string".
func ElementTypeToFHIRType(t ElementType) string {
	if ft, ok := elementToFHIRType[t]; ok {
		return ft
	}
	return fhirmodels.ItemTypeString
}

// FHIRTypeToElementType maps a Questionnaire item type to an element type.
// Unknown FHIR types map to the text element.
func FHIRTypeToElementType(fhirType string) ElementType {
	if t, ok := fhirTypeToElement[fhirType]; ok {
		return t
	}
	return ElementText
}
