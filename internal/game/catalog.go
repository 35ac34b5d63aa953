// Package game holds the built-in exercise content: organizational roles,
// incident scenarios, their ordered inject sequences, and the NIST CSF
// functions used to classify participant responses. The catalog is static,
// read-only input to the session layer.
package game

import "github.com/czhengjuarez/FireDrill/internal/models"

// Role is a selectable organizational role.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// NISTFunction is one of the five CSF core functions.
type NISTFunction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var roles = []Role{
	{ID: "communications", Name: "Communications/Media", Description: "Manages internal and external communications, media relations, and public messaging during incidents.", Color: "bg-blue-500", Icon: "megaphone"},
	{ID: "finance", Name: "Finance", Description: "Oversees financial impact assessment, budget allocation for incident response, and financial recovery.", Color: "bg-green-500", Icon: "currency"},
	{ID: "hr", Name: "Human Resources", Description: "Handles employee communications, training, and workforce management during security incidents.", Color: "bg-purple-500", Icon: "users"},
	{ID: "it", Name: "Information Technology", Description: "Manages technical infrastructure, system recovery, and IT security measures.", Color: "bg-indigo-500", Icon: "laptop"},
	{ID: "leader", Name: "Leader", Description: "Provides executive oversight, makes strategic decisions, and coordinates organizational response.", Color: "bg-red-500", Icon: "crown"},
	{ID: "legal", Name: "Legal/Risk/Compliance", Description: "Ensures regulatory compliance, manages legal implications, and assesses organizational risk.", Color: "bg-yellow-500", Icon: "scale"},
	{ID: "operations", Name: "Operations", Description: "Maintains business continuity, manages operational processes during incidents.", Color: "bg-orange-500", Icon: "cog"},
	{ID: "security", Name: "Security/Law Enforcement", Description: "Leads incident response, coordinates with law enforcement, and implements security measures.", Color: "bg-gray-700", Icon: "shield"},
}

var scenarios = []models.ScenarioData{
	{
		ID:            "phishing",
		Name:          "Phishing Attack",
		Description:   "A sophisticated phishing campaign targeting your organization's employees with credential harvesting attempts.",
		Severity:      "High",
		EstimatedTime: "60 minutes",
		Objectives: []string{
			"Identify the scope of the phishing attack",
			"Protect remaining systems and users",
			"Detect compromised accounts",
			"Respond to the incident effectively",
			"Recover and strengthen defenses",
		},
	},
	{
		ID:            "malware",
		Name:          "Malware Infection",
		Description:   "Ransomware has been detected on multiple systems across your organization.",
		Severity:      "Critical",
		EstimatedTime: "75 minutes",
		Objectives: []string{
			"Contain the malware spread",
			"Assess system damage",
			"Coordinate recovery efforts",
			"Communicate with stakeholders",
			"Implement lessons learned",
		},
	},
	{
		ID:            "insider_threat",
		Name:          "Insider Threat",
		Description:   "Suspicious activity suggests a potential insider threat with unauthorized data access.",
		Severity:      "High",
		EstimatedTime: "45 minutes",
		Objectives: []string{
			"Investigate suspicious behavior",
			"Protect sensitive information",
			"Coordinate with HR and Legal",
			"Maintain operational security",
			"Document findings",
		},
	},
	{
		ID:            "social_engineering",
		Name:          "Social Engineering",
		Description:   "Attackers are using social engineering tactics to gain unauthorized access to systems.",
		Severity:      "Medium",
		EstimatedTime: "30 minutes",
		Objectives: []string{
			"Identify attack vectors",
			"Educate affected personnel",
			"Strengthen security awareness",
			"Monitor for further attempts",
			"Update security protocols",
		},
	},
	{
		ID:            "business_continuity",
		Name:          "Business Continuity Crisis",
		Description:   "A major system outage threatens business operations and customer services.",
		Severity:      "Critical",
		EstimatedTime: "90 minutes",
		Objectives: []string{
			"Activate continuity plans",
			"Maintain critical operations",
			"Communicate with customers",
			"Coordinate recovery efforts",
			"Minimize business impact",
		},
	},
	{
		ID:            "unauthorized_downloads",
		Name:          "Unauthorized Downloads",
		Description:   "Employees are downloading and using unauthorized software, creating security vulnerabilities.",
		Severity:      "Medium",
		EstimatedTime: "45 minutes",
		Objectives: []string{
			"Identify unauthorized software usage",
			"Assess security risks and vulnerabilities",
			"Implement policy enforcement",
			"Educate employees on approved software",
			"Strengthen endpoint security controls",
		},
	},
}

var injectCards = map[string][]models.Inject{
	"phishing": {
		{ID: "phishing_1", TargetRole: "it", Title: "Suspicious Email Reports", Content: "Multiple employees have reported receiving suspicious emails claiming to be from the CEO requesting urgent wire transfers. The emails contain links to what appears to be a company login page.", Urgency: "high", Timestamp: "09:15 AM"},
		{ID: "phishing_2", TargetRole: "security", Title: "Security Alert Triggered", Content: "Your security monitoring system has detected unusual login attempts from multiple IP addresses using employee credentials. Several accounts show signs of compromise.", Urgency: "critical", Timestamp: "09:30 AM"},
		{ID: "phishing_3", TargetRole: "hr", Title: "Employee Concerns", Content: "Several employees are calling HR asking if the CEO really sent emails requesting personal information and financial transfers. They seem confused and worried.", Urgency: "medium", Timestamp: "09:45 AM"},
		{ID: "phishing_4", TargetRole: "communications", Title: "Media Inquiry", Content: "A local news reporter has called asking about reports of a \"security breach\" at your company. They claim to have received a tip from someone claiming to be an employee.", Urgency: "high", Timestamp: "10:00 AM"},
		{ID: "phishing_5", TargetRole: "finance", Title: "Unauthorized Transaction Attempt", Content: "The bank has called to verify a large wire transfer request that was submitted online using executive credentials. The transaction seems unusual for your organization.", Urgency: "critical", Timestamp: "10:15 AM"},
		{ID: "phishing_6", TargetRole: "legal", Title: "Regulatory Notification Requirements", Content: "You need to determine if this incident requires notification to regulators, law enforcement, or affected customers within specific timeframes.", Urgency: "high", Timestamp: "10:30 AM"},
	},
	"malware": {
		{ID: "malware_1", TargetRole: "it", Title: "System Encryption Detected", Content: "Multiple workstations are displaying ransomware messages. File servers are showing encrypted files with .locked extensions. Systems are becoming inaccessible.", Urgency: "critical", Timestamp: "08:00 AM"},
		{ID: "malware_2", TargetRole: "operations", Title: "Production Systems Down", Content: "Critical production systems have stopped responding. Manufacturing equipment is offline and customer service systems are inaccessible.", Urgency: "critical", Timestamp: "08:15 AM"},
		{ID: "malware_3", TargetRole: "security", Title: "Ransom Demand", Content: "A ransom note has appeared demanding 50 Bitcoin payment within 72 hours. The attackers claim to have exfiltrated sensitive customer data.", Urgency: "critical", Timestamp: "08:30 AM"},
		{ID: "malware_4", TargetRole: "leader", Title: "Executive Decision Required", Content: "The incident response team needs executive guidance on whether to pay the ransom, how to communicate with stakeholders, and resource allocation for recovery.", Urgency: "critical", Timestamp: "08:45 AM"},
	},
	"insider_threat": {
		{ID: "insider_1", TargetRole: "security", Title: "Unusual Access Patterns", Content: "Security logs show an employee accessing sensitive files outside their normal job responsibilities, including customer databases and financial records, during off-hours.", Urgency: "high", Timestamp: "07:30 AM"},
		{ID: "insider_2", TargetRole: "hr", Title: "Employee Performance Issues", Content: "The employee in question recently received a negative performance review and has been expressing dissatisfaction with management decisions.", Urgency: "medium", Timestamp: "08:00 AM"},
		{ID: "insider_3", TargetRole: "it", Title: "Data Transfer Alert", Content: "Large amounts of data have been transferred to external storage devices and cloud services from the suspect employee's workstation.", Urgency: "high", Timestamp: "08:15 AM"},
		{ID: "insider_4", TargetRole: "legal", Title: "Investigation Protocols", Content: "Legal guidance is needed on conducting an internal investigation while preserving evidence and protecting employee rights.", Urgency: "high", Timestamp: "08:30 AM"},
	},
	"social_engineering": {
		{ID: "social_1", TargetRole: "communications", Title: "Impersonation Calls", Content: "Multiple departments report receiving calls from someone claiming to be from IT support, requesting passwords and system access for \"urgent maintenance.\"", Urgency: "high", Timestamp: "11:00 AM"},
		{ID: "social_2", TargetRole: "hr", Title: "Fake Employee Verification", Content: "Someone called HR claiming to be from a background check company, requesting employee personal information for \"verification purposes.\"", Urgency: "medium", Timestamp: "11:30 AM"},
		{ID: "social_3", TargetRole: "security", Title: "Physical Security Breach", Content: "Security cameras show an unauthorized person who gained access to the building by following employees and claiming to be a new contractor.", Urgency: "high", Timestamp: "12:00 PM"},
	},
	"business_continuity": {
		{ID: "bc_1", TargetRole: "it", Title: "Data Center Outage", Content: "The primary data center has experienced a complete power failure. Backup generators failed to start, and all systems are offline.", Urgency: "critical", Timestamp: "14:00 PM"},
		{ID: "bc_2", TargetRole: "operations", Title: "Customer Service Impact", Content: "Customer service systems are down. Call centers cannot access customer records, and the company website is inaccessible.", Urgency: "critical", Timestamp: "14:15 PM"},
		{ID: "bc_3", TargetRole: "communications", Title: "Customer Communications", Content: "Customers are posting complaints on social media about service outages. Local news is starting to pick up the story.", Urgency: "high", Timestamp: "14:30 PM"},
		{ID: "bc_4", TargetRole: "finance", Title: "Financial Impact Assessment", Content: "Each hour of downtime is costing approximately $100,000 in lost revenue. Payment processing systems are also affected.", Urgency: "high", Timestamp: "14:45 PM"},
		{ID: "bc_5", TargetRole: "leader", Title: "Executive Decision Required", Content: "The board of directors is demanding updates. Customers are threatening to switch providers. A decision is needed on activating the disaster recovery site.", Urgency: "critical", Timestamp: "15:00 PM"},
		{ID: "bc_6", TargetRole: "hr", Title: "Employee Coordination", Content: "Remote employees cannot access systems to work. Some departments want to send staff home. Others need emergency staffing for manual processes.", Urgency: "high", Timestamp: "15:15 PM"},
		{ID: "bc_7", TargetRole: "legal", Title: "Regulatory Compliance Concerns", Content: "The outage may violate SLA agreements with major clients. Regulatory reporting deadlines are at risk. Legal implications of the extended downtime need assessment.", Urgency: "high", Timestamp: "15:30 PM"},
		{ID: "bc_8", TargetRole: "security", Title: "Security During Recovery", Content: "As systems come back online, security controls need verification. There are concerns about data integrity and potential security compromises during the outage.", Urgency: "high", Timestamp: "15:45 PM"},
	},
	"unauthorized_downloads": {
		{ID: "ud_1", TargetRole: "it", Title: "Unauthorized Software Detection", Content: "Network monitoring has detected multiple instances of unauthorized software installations, including file-sharing applications, games, and productivity tools not approved by IT.", Urgency: "medium", Timestamp: "09:00 AM"},
		{ID: "ud_2", TargetRole: "security", Title: "Malware Risk Assessment", Content: "Security scans reveal that some unauthorized downloads contain malware. Several workstations show signs of infection, and network traffic indicates potential data exfiltration.", Urgency: "high", Timestamp: "09:30 AM"},
		{ID: "ud_3", TargetRole: "hr", Title: "Employee Policy Violations", Content: "Multiple employees across different departments have violated the acceptable use policy. Some claim they needed the software for work, others downloaded personal applications.", Urgency: "medium", Timestamp: "10:00 AM"},
		{ID: "ud_4", TargetRole: "legal", Title: "Licensing and Compliance Issues", Content: "Unlicensed software usage may violate copyright laws and software licensing agreements. The organization could face legal action and significant fines.", Urgency: "high", Timestamp: "10:30 AM"},
		{ID: "ud_5", TargetRole: "operations", Title: "System Performance Impact", Content: "Unauthorized applications are consuming significant network bandwidth and system resources, causing slowdowns in critical business applications.", Urgency: "medium", Timestamp: "11:00 AM"},
		{ID: "ud_6", TargetRole: "finance", Title: "Budget and Cost Implications", Content: "The organization may need to purchase legitimate licenses for software already in use. Additionally, remediation costs and potential fines need budget consideration.", Urgency: "medium", Timestamp: "11:30 AM"},
		{ID: "ud_7", TargetRole: "communications", Title: "Internal Communication Strategy", Content: "Employees need to be informed about the policy violations and new security measures. A communication plan is needed to address concerns and prevent future incidents.", Urgency: "medium", Timestamp: "12:00 PM"},
		{ID: "ud_8", TargetRole: "leader", Title: "Policy Enforcement Decision", Content: "Executive decision needed on disciplinary actions, policy updates, and investment in approved software alternatives to meet employee needs while maintaining security.", Urgency: "high", Timestamp: "12:30 PM"},
	},
}

var nistFunctions = []NISTFunction{
	{ID: "identify", Name: "Identify", Description: "Understand cybersecurity risks to systems, assets, data, and capabilities", Color: "bg-blue-600"},
	{ID: "protect", Name: "Protect", Description: "Implement safeguards to ensure delivery of critical services", Color: "bg-green-600"},
	{ID: "detect", Name: "Detect", Description: "Implement activities to identify cybersecurity events", Color: "bg-yellow-600"},
	{ID: "respond", Name: "Respond", Description: "Take action regarding detected cybersecurity incidents", Color: "bg-orange-600"},
	{ID: "recover", Name: "Recover", Description: "Maintain resilience and restore capabilities impaired by incidents", Color: "bg-purple-600"},
}

// Roles returns the built-in role catalog.
func Roles() []Role { return roles }

// RoleByID looks up a built-in role.
func RoleByID(id string) (Role, bool) {
	for _, r := range roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// Scenarios returns the built-in scenario catalog.
func Scenarios() []models.ScenarioData { return scenarios }

// ScenarioByID looks up a built-in scenario.
func ScenarioByID(id string) (models.ScenarioData, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return models.ScenarioData{}, false
}

// InjectsFor returns the ordered inject sequence for a built-in scenario,
// or nil for unknown IDs.
func InjectsFor(scenarioID string) []models.Inject {
	return injectCards[scenarioID]
}

// NISTFunctions returns the five CSF core functions.
func NISTFunctions() []NISTFunction { return nistFunctions }

// ValidNISTCategory reports whether id names one of the CSF functions.
func ValidNISTCategory(id string) bool {
	for _, f := range nistFunctions {
		if f.ID == id {
			return true
		}
	}
	return false
}
