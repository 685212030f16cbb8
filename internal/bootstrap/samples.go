package bootstrap

// Demonstration rows written into empty stores. These literals are part of
// the documented bootstrap contract; tests and operator runbooks rely on
// the exact ids and values.

var sampleUsers = [][]string{
	{"USER001", "doctor1", "password123", "CLINICAL_STAFF", "Dr. John Smith", "john.smith@hospital.com"},
	{"USER002", "admin1", "password123", "ADMINISTRATOR", "Admin User", "admin@hospital.com"},
	{"USER003", "mha1", "password123", "MHA_ADMINISTRATOR", "MHA Manager", "mha@hospital.com"},
	{"USER004", "sysadmin", "password123", "SYSTEM_ADMIN", "System Administrator", "sysadmin@hospital.com"},
}

var samplePatients = [][]string{
	{"PAT001", "NH123456789", "John Doe", "123 Main St", "Edinburgh", "1980-05-15", "555-0123", "LOW", "false", "", ""},
	{"PAT002", "NH987654321", "Jane Smith", "456 Oak Ave", "Glasgow", "1975-08-22", "555-0456", "HIGH", "true", "2024-01-15", "2024-04-15"},
	{"PAT003", "NH456789123", "Robert Brown", "789 Pine Rd", "Aberdeen", "1990-12-10", "555-0789", "MEDIUM", "false", "", ""},
}

var sampleConsultations = [][]string{
	{"CONS001", "PAT001", "2024-01-10T10:30:00", "USER001", "Patient appears stable and responsive", "Anxiety;Depression", "", "Social Services", "true"},
	{"CONS002", "PAT002", "2024-01-12T14:15:00", "USER001", "Patient shows signs of improvement but requires monitoring", "Bipolar Disorder", "", "Psychiatric Ward", "true"},
}

var samplePrescriptions = [][]string{
	{"PRES001", "PAT001", "Sertraline", "50mg", "Once daily", "2024-01-10", "2024-04-10", "USER001", "false", "Monitor for side effects"},
	{"PRES002", "PAT002", "Lithium", "300mg", "Twice daily", "2024-01-12", "2024-04-12", "USER001", "true", "Regular blood tests required"},
}
