// Package i18n holds the static key -> locale-string table shared by the
// web and mobile clients, plus the lookup used server-side for localized
// notification and email copy.
package i18n

// Languages
const (
	LangEnglish = "en"
	LangHindi   = "hi"
)

// DefaultLanguage - fallback locale
const DefaultLanguage = LangEnglish

// Entry - one translation key in both locales
type Entry struct {
	En string `json:"en"`
	Hi string `json:"hi"`
}

// IsValidLanguage - locale enum check
func IsValidLanguage(lang string) bool {
	return lang == LangEnglish || lang == LangHindi
}

// T looks up a key in the given locale and falls back to the raw key when
// the key is unknown
func T(key, lang string) string {
	entry, ok := translations[key]
	if !ok {
		return key
	}
	if lang == LangHindi {
		return entry.Hi
	}
	return entry.En
}

// Table returns the full key -> string map for one locale, for clients that
// want to cache the whole dictionary at startup
func Table(lang string) map[string]string {
	table := make(map[string]string, len(translations))
	for key, entry := range translations {
		if lang == LangHindi {
			table[key] = entry.Hi
		} else {
			table[key] = entry.En
		}
	}
	return table
}

var translations = map[string]Entry{
	// Navigation
	"nav.home":     {En: "Home", Hi: "होम"},
	"nav.services": {En: "Services", Hi: "सेवाएं"},
	"nav.bookings": {En: "My Bookings", Hi: "मेरी बुकिंग"},
	"nav.profile":  {En: "Profile", Hi: "प्रोफ़ाइल"},
	"nav.logout":   {En: "Logout", Hi: "लॉग आउट"},

	// Landing page
	"landing.title":       {En: "KaamSaathi", Hi: "कामसाथी"},
	"landing.subtitle":    {En: "Your Trusted Local Labour Partner", Hi: "आपका विश्वसनीय स्थानीय श्रमिक साथी"},
	"landing.description": {En: "Connect with skilled workers in your area for all your home service needs", Hi: "अपने घर की सभी सेवा आवश्यकताओं के लिए अपने क्षेत्र में कुशल कर्मचारियों से जुड़ें"},
	"landing.customer":    {En: "Login as Customer", Hi: "ग्राहक के रूप में लॉगिन करें"},
	"landing.partner":     {En: "Login as Partner", Hi: "साथी के रूप में लॉगिन करें"},

	// Auth
	"auth.login":         {En: "Login", Hi: "लॉगिन"},
	"auth.signup":        {En: "Sign Up", Hi: "साइन अप"},
	"auth.email":         {En: "Email", Hi: "ईमेल"},
	"auth.password":      {En: "Password", Hi: "पासवर्ड"},
	"auth.name":          {En: "Full Name", Hi: "पूरा नाम"},
	"auth.phone":         {En: "Phone Number", Hi: "फ़ोन नंबर"},
	"auth.noAccount":     {En: "Don't have an account?", Hi: "खाता नहीं है?"},
	"auth.haveAccount":   {En: "Already have an account?", Hi: "पहले से खाता है?"},
	"auth.customerTitle": {En: "Customer Login", Hi: "ग्राहक लॉगिन"},
	"auth.partnerTitle":  {En: "Partner Login", Hi: "साथी लॉगिन"},

	// Dashboard
	"dashboard.welcome":       {En: "Welcome back", Hi: "वापसी पर स्वागत है"},
	"dashboard.selectService": {En: "Select a Service", Hi: "एक सेवा चुनें"},
	"dashboard.categories":    {En: "Service Categories", Hi: "सेवा श्रेणियां"},

	// Services
	"service.electrician":      {En: "Electrician", Hi: "इलेक्ट्रीशियन"},
	"service.builder":          {En: "Builder", Hi: "राजमिस्त्री"},
	"service.plumber":          {En: "Plumber", Hi: "प्लंबर"},
	"service.carpenter":        {En: "Carpenter", Hi: "बढ़ई"},
	"service.whitewasher":      {En: "Whitewasher", Hi: "पुताई वाला"},
	"service.electrician.desc": {En: "Electrical repairs and installations", Hi: "विद्युत मरम्मत और स्थापना"},
	"service.builder.desc":     {En: "Construction and masonry work", Hi: "निर्माण और राजगीरी का काम"},
	"service.plumber.desc":     {En: "Plumbing repairs and installations", Hi: "प्लंबिंग मरम्मत और स्थापना"},
	"service.carpenter.desc":   {En: "Woodwork and furniture", Hi: "लकड़ी का काम और फर्नीचर"},
	"service.whitewasher.desc": {En: "Painting and whitewashing", Hi: "पेंटिंग और सफेदी"},

	// Workers
	"worker.available":   {En: "Available", Hi: "उपलब्ध"},
	"worker.unavailable": {En: "Unavailable", Hi: "अनुपलब्ध"},
	"worker.perDay":      {En: "per day", Hi: "प्रति दिन"},
	"worker.experience":  {En: "years experience", Hi: "वर्ष अनुभव"},
	"worker.reviews":     {En: "reviews", Hi: "समीक्षाएं"},
	"worker.bookNow":     {En: "Book Now", Hi: "अभी बुक करें"},
	"worker.viewDetails": {En: "View Details", Hi: "विवरण देखें"},

	// Booking
	"booking.title":      {En: "Book Worker", Hi: "कर्मचारी बुक करें"},
	"booking.selectDate": {En: "Select Start Date", Hi: "प्रारंभ तिथि चुनें"},
	"booking.address":    {En: "Service Address", Hi: "सेवा पता"},
	"booking.days":       {En: "Number of Days", Hi: "दिनों की संख्या"},
	"booking.total":      {En: "Total Amount", Hi: "कुल राशि"},
	"booking.confirm":    {En: "Confirm Booking", Hi: "बुकिंग की पुष्टि करें"},
	"booking.cancel":     {En: "Cancel", Hi: "रद्द करें"},
	"booking.success":    {En: "Booking Confirmed!", Hi: "बुकिंग की पुष्टि हो गई!"},

	// Notifications (server side)
	"notify.newBooking.title": {En: "New booking request", Hi: "नई बुकिंग अनुरोध"},
	"notify.newBooking.body":  {En: "You have a new booking request", Hi: "आपके पास एक नई बुकिंग अनुरोध है"},

	// Common
	"common.search":  {En: "Search", Hi: "खोजें"},
	"common.filter":  {En: "Filter", Hi: "फ़िल्टर"},
	"common.sort":    {En: "Sort", Hi: "क्रमबद्ध करें"},
	"common.loading": {En: "Loading...", Hi: "लोड हो रहा है..."},
}
