package gdt

// Field types used in the GDT record description.
const (
	TypeAlnum = "alnum"
	TypeNum   = "num"
	TypeDate  = "date"
)

// mappingTable lists the GDT 2.1 field identifiers understood by the form
// designer, in display order.
var mappingTable = []Mapping{
	// Record header
	{Code: "8000", Bezeichnung: "Satzidentifikation", Length: 4, Type: TypeNum, Example: "6310"},
	{Code: "8100", Bezeichnung: "Satzlänge", Length: 5, Type: TypeNum, Example: "00123"},
	{Code: "8315", Bezeichnung: "GDT-ID des Empfängers", Length: 8, Type: TypeAlnum, Example: "EKG_01"},
	{Code: "8316", Bezeichnung: "GDT-ID des Senders", Length: 8, Type: TypeAlnum, Example: "PRAX_EDV"},
	{Code: "9206", Bezeichnung: "Verwendeter Zeichensatz", Length: 1, Type: TypeNum, Rule: `value in ["1", "2", "3"]`, Example: "2"},
	{Code: "9218", Bezeichnung: "Version GDT", Length: 5, Type: TypeAlnum, Example: "02.10"},

	// Patient
	{Code: "3000", Bezeichnung: "Patientennummer", Length: 10, Type: TypeAlnum, Example: "12345"},
	{Code: "3101", Bezeichnung: "Name des Patienten", Length: 28, Type: TypeAlnum, Example: "Mustermann"},
	{Code: "3102", Bezeichnung: "Vorname des Patienten", Length: 28, Type: TypeAlnum, Example: "Franz"},
	{Code: "3103", Bezeichnung: "Geburtsdatum des Patienten", Length: 8, Type: TypeDate, Example: "01101945"},
	{Code: "3104", Bezeichnung: "Titel des Patienten", Length: 15, Type: TypeAlnum, Example: "Dr."},
	{Code: "3105", Bezeichnung: "Versichertennummer des Patienten", Length: 12, Type: TypeAlnum, Example: "A123456789"},
	{Code: "3106", Bezeichnung: "Wohnort des Patienten", Length: 30, Type: TypeAlnum, Example: "12345 Berlin"},
	{Code: "3107", Bezeichnung: "Straße des Patienten", Length: 28, Type: TypeAlnum, Example: "Hauptstraße 1"},
	{Code: "3108", Bezeichnung: "Versichertenart MFR", Length: 1, Type: TypeNum, Rule: `value in ["1", "3", "5"]`, Example: "1"},
	{Code: "3110", Bezeichnung: "Geschlecht des Patienten", Length: 1, Type: TypeNum, Rule: `value in ["1", "2"]`, Example: "1"},
	{Code: "3622", Bezeichnung: "Größe des Patienten", Length: 7, Type: TypeAlnum, Example: "178"},
	{Code: "3623", Bezeichnung: "Gewicht des Patienten", Length: 7, Type: TypeAlnum, Example: "82"},
	{Code: "3628", Bezeichnung: "Muttersprache des Patienten", Length: 60, Type: TypeAlnum, Example: "Deutsch"},

	// Treatment data
	{Code: "6200", Bezeichnung: "Tag der Speicherung von Behandlungsdaten", Length: 8, Type: TypeDate, Example: "15032024"},
	{Code: "6201", Bezeichnung: "Uhrzeit der Erhebung von Behandlungsdaten", Length: 6, Type: TypeNum, Rule: `int(value[0:2]) < 24 && int(value[2:4]) < 60`, Example: "103000"},
	{Code: "6205", Bezeichnung: "Aktuelle Diagnose", Length: 60, Type: TypeAlnum, Example: "Hypertonie"},
	{Code: "6220", Bezeichnung: "Befund", Length: 60, Type: TypeAlnum, Example: "o.B."},
	{Code: "6221", Bezeichnung: "Fremdbefund", Length: 60, Type: TypeAlnum, Example: "Röntgen Thorax unauffällig"},
	{Code: "6227", Bezeichnung: "Kommentar", Length: 60, Type: TypeAlnum, Example: "Kontrolle in 4 Wochen"},
	{Code: "6228", Bezeichnung: "Ergebnistabellentext", Length: 60, Type: TypeAlnum, Example: "HF 72/min"},
	{Code: "6302", Bezeichnung: "Dateiarchivierungskennung", Length: 60, Type: TypeAlnum, Example: "000001"},
	{Code: "6303", Bezeichnung: "Dateiformat", Length: 60, Type: TypeAlnum, Example: "pdf"},
	{Code: "6304", Bezeichnung: "Dateiinhalt", Length: 60, Type: TypeAlnum, Example: "Langzeit-EKG"},
	{Code: "6305", Bezeichnung: "Verweis auf Datei", Length: 60, Type: TypeAlnum, Example: "C:\\GDT\\EKG0001.pdf"},

	// Test results
	{Code: "8402", Bezeichnung: "Geräte- und verfahrensspezifisches Kennfeld", Length: 6, Type: TypeAlnum, Example: "EKG01"},
	{Code: "8410", Bezeichnung: "Test-Ident", Length: 20, Type: TypeAlnum, Example: "HF"},
	{Code: "8411", Bezeichnung: "Testbezeichnung", Length: 20, Type: TypeAlnum, Example: "Herzfrequenz"},
	{Code: "8418", Bezeichnung: "Teststatus", Length: 1, Type: TypeAlnum, Rule: `value in ["B", "K", "F"]`, Example: "B"},
	{Code: "8420", Bezeichnung: "Ergebnis-Wert", Length: 20, Type: TypeAlnum, Example: "72"},
	{Code: "8421", Bezeichnung: "Einheit", Length: 20, Type: TypeAlnum, Example: "/min"},
	{Code: "8432", Bezeichnung: "Abnahme-Datum", Length: 8, Type: TypeDate, Example: "15032024"},
	{Code: "8439", Bezeichnung: "Abnahme-Zeit", Length: 4, Type: TypeNum, Rule: `int(value[0:2]) < 24 && int(value[2:4]) < 60`, Example: "1030"},
	{Code: "8460", Bezeichnung: "Normalwert-Text", Length: 60, Type: TypeAlnum, Example: "60-100"},
	{Code: "8461", Bezeichnung: "Normalwert untere Grenze", Length: 20, Type: TypeAlnum, Example: "60"},
	{Code: "8462", Bezeichnung: "Normalwert obere Grenze", Length: 20, Type: TypeAlnum, Example: "100"},
	{Code: "8470", Bezeichnung: "Testbezogene Hinweise", Length: 60, Type: TypeAlnum, Example: "in Ruhe gemessen"},
	{Code: "8480", Bezeichnung: "Ergebnis-Text", Length: 60, Type: TypeAlnum, Example: "Sinusrhythmus"},
	{Code: "8990", Bezeichnung: "Namenskürzel", Length: 60, Type: TypeAlnum, Example: "MM"},
}
