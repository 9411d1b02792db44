package taxonomy

// Built-in categories, in scoring order
const (
	TechEngineering     Category = "Tech/Engineering"
	AcademicsSchool     Category = "Academics/School"
	CareerJobs          Category = "Career/Jobs"
	SportsFitness       Category = "Sports/Fitness"
	Food                Category = "Food"
	SocialPeople        Category = "Social/People"
	EntertainmentGaming Category = "Entertainment/Gaming"
)

// defaultNegations are the words that suppress a keyword occurrence that follows them
var defaultNegations = []string{
	"not", "no", "never", "don't", "dont", "doesn't", "doesnt", "won't", "wont",
	"can't", "cant", "couldn't", "couldnt", "wouldn't", "wouldnt", "shouldn't",
	"shouldnt", "isn't", "isnt", "aren't", "arent", "wasn't", "wasnt", "weren't",
	"werent", "hardly", "barely", "neither", "nor", "none", "nobody", "nothing",
}

// defaultFile is the built-in taxonomy in its file representation, so that
// Default() and Load() share one construction path.
func defaultFile() File {
	return File{
		Negations: defaultNegations,
		Categories: []CategoryEntry{
			{
				Name: string(TechEngineering),
				Keywords: []Keyword{
					// Programming
					{"programming", 2.0}, {"coding", 2.0}, {"code", 1.5}, {"developer", 2.0}, {"software", 1.5},
					// Languages
					{"python", 1.5}, {"java", 1.5}, {"javascript", 1.5}, {"c++", 1.5}, {"react", 1.5},
					{"css", 1.0}, {"html", 1.0}, {"typescript", 1.5}, {"rust", 1.5}, {"go", 1.5},
					// Hardware
					{"arduino", 1.5}, {"esp32", 1.5}, {"circuit", 1.5}, {"pcb", 1.5}, {"signal", 1.0},
					{"semiconductor", 1.5}, {"mosfet", 1.5}, {"fpga", 1.5}, {"embedded", 1.5},
					// AI/ML
					{"ai", 1.5}, {"ml", 1.5}, {"machine learning", 2.0}, {"deep learning", 2.0},
					{"model", 1.0}, {"dataset", 1.5}, {"neural", 1.5}, {"gpu", 1.0}, {"tensorflow", 1.5},
					// Tools and platforms
					{"git", 1.0}, {"github", 1.0}, {"docker", 1.5}, {"kubernetes", 1.5}, {"aws", 1.5},
					{"cloud", 1.0}, {"api", 1.5}, {"database", 1.5}, {"sql", 1.5}, {"linux", 1.5},
					// Concepts
					{"algorithm", 1.5}, {"debug", 1.0}, {"compile", 1.0}, {"deploy", 1.0},
					{"backend", 1.5}, {"frontend", 1.5}, {"fullstack", 1.5}, {"devops", 1.5},
				},
				Boosters: []string{"learn", "build", "develop", "create", "design", "implement", "debug", "fix"},
				Social:   ptr(-1),
				Activity: ptr(0),
				Suggestions: []string{
					"Attend a coding meetup or hackathon this week",
					"Start a small side project using a language you've wanted to learn",
					"Join an online tech community or Discord server for your interests",
				},
			},
			{
				Name: string(AcademicsSchool),
				Keywords: []Keyword{
					{"class", 1.0}, {"lecture", 1.5}, {"homework", 1.5}, {"assignment", 1.5},
					{"exam", 2.0}, {"test", 1.5}, {"quiz", 1.5}, {"project", 1.0}, {"essay", 1.5},
					{"professor", 1.5}, {"ta", 1.5}, {"teacher", 1.5}, {"instructor", 1.5},
					{"grade", 1.5}, {"gpa", 2.0}, {"study", 1.5}, {"studying", 1.5},
					{"midterm", 2.0}, {"final", 1.5}, {"finals", 1.5},
					{"research", 1.5}, {"lab", 1.0}, {"thesis", 2.0}, {"dissertation", 2.0},
					{"semester", 1.0}, {"course", 1.0}, {"syllabus", 1.5}, {"textbook", 1.0},
					{"library", 1.0}, {"campus", 1.0}, {"university", 1.0}, {"college", 1.0},
				},
				Boosters: []string{"due", "submit", "prepare", "review", "cram", "pass", "fail"},
				Social:   ptr(0),
				Activity: ptr(-0.5),
				Suggestions: []string{
					"Form a study group for an upcoming exam",
					"Attend office hours to discuss challenging concepts",
					"Work on a project with a classmate for collaborative learning",
				},
			},
			{
				Name: string(CareerJobs),
				Keywords: []Keyword{
					{"internship", 2.0}, {"interview", 2.0}, {"resume", 2.0}, {"cv", 2.0},
					{"recruiter", 2.0}, {"linkedin", 1.5}, {"offer", 1.5}, {"application", 1.5},
					{"job", 1.5}, {"career", 1.5}, {"hiring", 1.5}, {"recruitment", 1.5},
					{"salary", 2.0}, {"compensation", 2.0}, {"benefits", 1.5}, {"401k", 1.5},
					{"stock options", 2.0}, {"bonus", 1.5}, {"raise", 1.5}, {"promotion", 1.5},
					{"workplace", 1.0}, {"office", 0.5}, {"remote", 1.0}, {"wfh", 1.5},
					{"manager", 1.0}, {"boss", 1.0}, {"colleague", 1.0}, {"coworker", 1.0},
					{"meeting", 0.5}, {"deadline", 1.0}, {"project management", 1.5},
				},
				Boosters: []string{"apply", "search", "looking", "negotiate", "accept", "decline"},
				Social:   ptr(1),
				Activity: ptr(0),
				Suggestions: []string{
					"Update your LinkedIn profile and reach out to 2-3 professionals in your field",
					"Attend a career fair or industry networking event",
					"Schedule coffee chats with people in roles you aspire to",
				},
			},
			{
				Name: string(SportsFitness),
				Keywords: []Keyword{
					{"gym", 2.0}, {"workout", 2.0}, {"exercise", 2.0}, {"lift", 2.0}, {"lifting", 2.0},
					{"training", 1.5}, {"cardio", 1.5}, {"running", 1.5}, {"jogging", 1.5},
					{"protein", 1.5}, {"calories", 1.5}, {"diet", 1.0}, {"nutrition", 1.5},
					{"supplements", 1.5}, {"gains", 1.5}, {"bulk", 1.5}, {"cut", 1.0},
					{"basketball", 2.0}, {"soccer", 2.0}, {"football", 2.0}, {"tennis", 2.0},
					{"baseball", 2.0}, {"volleyball", 2.0}, {"swimming", 2.0}, {"cycling", 2.0},
					{"athlete", 1.5}, {"coach", 1.5}, {"team", 1.0}, {"practice", 1.0},
					{"game", 0.5}, {"match", 1.0}, {"competition", 1.5}, {"tournament", 1.5},
				},
				Social:   ptr(0),
				Activity: ptr(0),
				Suggestions: []string{
					"Try a new fitness class at your gym or campus",
					"Invite a friend for a workout or sports activity",
					"Join an intramural team or casual sports group",
				},
			},
			{
				Name: string(Food),
				Keywords: []Keyword{
					{"eat", 1.0}, {"eating", 1.0}, {"dinner", 1.5}, {"lunch", 1.5}, {"breakfast", 1.5},
					{"brunch", 1.5}, {"meal", 1.5}, {"snack", 1.0}, {"hungry", 1.0},
					{"cook", 1.5}, {"cooking", 1.5}, {"recipe", 2.0}, {"bake", 1.5}, {"baking", 1.5},
					{"kitchen", 1.0}, {"chef", 1.5}, {"ingredients", 1.5},
					{"restaurant", 1.5}, {"cafe", 1.5}, {"coffee", 1.0}, {"pizza", 1.0},
					{"sushi", 1.0}, {"burger", 1.0}, {"taco", 1.0}, {"ramen", 1.0},
					{"order", 0.5}, {"delivery", 1.0}, {"takeout", 1.5}, {"reservation", 1.5},
					{"menu", 1.0}, {"food", 1.0}, {"taste", 1.0}, {"delicious", 1.0},
				},
				Social:   ptr(1),
				Activity: ptr(0.5),
				Suggestions: []string{
					"Try a new restaurant with friends this week",
					"Cook a meal with roommates or classmates",
					"Attend a food-focused event or tasting on campus",
				},
			},
			{
				Name: string(SocialPeople),
				Keywords: []Keyword{
					{"party", 2.0}, {"hangout", 2.0}, {"hang out", 2.0}, {"meet", 1.0}, {"meeting", 0.5},
					{"club", 1.5}, {"event", 1.0}, {"gathering", 1.5}, {"get together", 2.0},
					{"friends", 1.5}, {"friend", 1.0}, {"dating", 2.0}, {"date", 1.5}, {"relationship", 1.5},
					{"girlfriend", 1.5}, {"boyfriend", 1.5}, {"crush", 2.0},
					{"conversation", 1.0}, {"talking", 1.0}, {"chat", 1.0}, {"texting", 1.0},
					{"call", 0.5}, {"social", 1.5}, {"networking", 1.0},
					{"bar", 1.5}, {"drinks", 1.5}, {"dance", 1.5}, {"dancing", 1.5},
					{"karaoke", 2.0}, {"trivia", 1.5}, {"board game", 1.5},
				},
				Social:   ptr(2),
				Activity: ptr(1),
				Suggestions: []string{
					"Plan a hangout with friends you haven't seen recently",
					"Attend a social event or party happening on campus",
					"Start a group chat for a shared interest or hobby",
				},
			},
			{
				Name: string(EntertainmentGaming),
				Keywords: []Keyword{
					{"game", 1.0}, {"gaming", 2.0}, {"gamer", 2.0}, {"gameplay", 2.0},
					{"valorant", 2.0}, {"league", 1.5}, {"lol", 1.0}, {"minecraft", 2.0},
					{"fortnite", 2.0}, {"apex", 2.0}, {"cod", 2.0}, {"cs2", 2.0}, {"csgo", 2.0},
					{"playstation", 1.5}, {"xbox", 1.5}, {"nintendo", 1.5}, {"switch", 1.0},
					{"pc gaming", 2.0}, {"console", 1.5}, {"steam", 1.5},
					{"movie", 1.5}, {"film", 1.5}, {"cinema", 1.5}, {"netflix", 2.0},
					{"hulu", 2.0}, {"disney plus", 2.0}, {"streaming", 1.5}, {"binge", 1.5},
					{"music", 1.5}, {"song", 1.0}, {"album", 1.5}, {"concert", 2.0},
					{"festival", 1.5}, {"spotify", 1.5}, {"playlist", 1.5},
					{"youtube", 1.5}, {"twitch", 2.0}, {"podcast", 1.5}, {"streamer", 2.0},
					{"stream", 1.0}, {"video", 1.0}, {"watch", 0.5}, {"watching", 0.5},
				},
				Social:   ptr(0),
				Activity: ptr(-0.5),
				Suggestions: []string{
					"Join a gaming session with friends online or in-person",
					"Attend a gaming event or tournament",
					"Watch the latest movie/show with a small group",
				},
			},
		},
	}
}

func ptr(f float64) *float64 {
	return &f
}
