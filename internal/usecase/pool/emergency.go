package usecase_pool

import "github.com/mkhalturin/filmatch/core/internal/model"

// emergencyItems is the last line of the fallback chain: a fixed list of
// well-known titles used when every content-source query has failed, so a
// room is never left without a pool. Ids are real TMDB movie ids.
var emergencyItems = []model.ContentItem{
	{ID: 550, Title: "Fight Club", Overview: "An insomniac office worker and a devil-may-care soapmaker form an underground fight club.", VoteAverage: 8.4, ReleaseDate: "1999-10-15", PosterPath: "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", GenreIDs: []int{18}},
	{ID: 13, Title: "Forrest Gump", Overview: "A man with a low IQ accomplishes great things and witnesses defining historic events.", VoteAverage: 8.5, ReleaseDate: "1994-06-23", PosterPath: "/arw2vcBveWOVZr6pxd9XTd1TdQa.jpg", GenreIDs: []int{35, 18, 10749}},
	{ID: 278, Title: "The Shawshank Redemption", Overview: "Two imprisoned men bond over the years, finding solace and eventual redemption.", VoteAverage: 9.3, ReleaseDate: "1994-09-23", PosterPath: "/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg", GenreIDs: []int{18}},
	{ID: 238, Title: "The Godfather", Overview: "The patriarch of a crime dynasty transfers control of his empire to his reluctant son.", VoteAverage: 9.2, ReleaseDate: "1972-03-14", PosterPath: "/3bhkrj58Vtu7enYsRolD1fZdja1.jpg", GenreIDs: []int{18, 80}},
	{ID: 424, Title: "Schindler's List", Overview: "An industrialist grows concerned for his Jewish workforce in German-occupied Poland.", VoteAverage: 9.0, ReleaseDate: "1993-11-30", PosterPath: "/sF1U4EUQS8YHUYjNl3pMGNIQyr0.jpg", GenreIDs: []int{18, 36, 10752}},
	{ID: 155, Title: "The Dark Knight", Overview: "Batman faces the Joker, a criminal mastermind bent on plunging Gotham into anarchy.", VoteAverage: 8.5, ReleaseDate: "2008-07-16", PosterPath: "/qJ2tW6WMUDux911r6m7haRef0WH.jpg", GenreIDs: []int{18, 28, 80, 53}},
	{ID: 680, Title: "Pulp Fiction", Overview: "The lives of two mob hitmen, a boxer and a pair of diner bandits intertwine.", VoteAverage: 8.5, ReleaseDate: "1994-09-10", PosterPath: "/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg", GenreIDs: []int{53, 80}},
	{ID: 603, Title: "The Matrix", Overview: "A hacker learns the world he lives in is a simulation and joins a rebellion.", VoteAverage: 8.2, ReleaseDate: "1999-03-30", PosterPath: "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg", GenreIDs: []int{28, 878}},
	{ID: 27205, Title: "Inception", Overview: "A thief who steals secrets through dream-sharing is given an inverse task: plant an idea.", VoteAverage: 8.4, ReleaseDate: "2010-07-15", PosterPath: "/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg", GenreIDs: []int{28, 878, 12}},
	{ID: 157336, Title: "Interstellar", Overview: "Explorers travel through a wormhole in search of a new home for humanity.", VoteAverage: 8.4, ReleaseDate: "2014-11-05", PosterPath: "/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg", GenreIDs: []int{12, 18, 878}},
	{ID: 122, Title: "The Lord of the Rings: The Return of the King", Overview: "Aragorn leads the World of Men against Sauron while Frodo nears Mount Doom.", VoteAverage: 8.5, ReleaseDate: "2003-12-01", PosterPath: "/rCzpDGLbOoPwLjy3OAm5NUPOTrC.jpg", GenreIDs: []int{12, 14, 28}},
	{ID: 120, Title: "The Lord of the Rings: The Fellowship of the Ring", Overview: "A hobbit inherits a ring that must be destroyed before it falls into evil hands.", VoteAverage: 8.4, ReleaseDate: "2001-12-18", PosterPath: "/6oom5QYQ2yQTMJIbnvbkBL9cHo6.jpg", GenreIDs: []int{12, 14, 28}},
	{ID: 11, Title: "Star Wars", Overview: "Princess Leia is captured and Luke Skywalker joins the fight against the Empire.", VoteAverage: 8.2, ReleaseDate: "1977-05-25", PosterPath: "/6FfCtAuVAW8XJjZ7eWeLibRLWTw.jpg", GenreIDs: []int{12, 28, 878}},
	{ID: 1891, Title: "The Empire Strikes Back", Overview: "The rebels scatter as Darth Vader hunts Luke Skywalker across the galaxy.", VoteAverage: 8.4, ReleaseDate: "1980-05-20", PosterPath: "/nNAeTmF4CtdSgMDplXTDPOpYzsX.jpg", GenreIDs: []int{12, 28, 878}},
	{ID: 329, Title: "Jurassic Park", Overview: "A wealthy entrepreneur opens a theme park populated by cloned dinosaurs.", VoteAverage: 7.9, ReleaseDate: "1993-06-11", PosterPath: "/oU7Oq2kFAAlGqbU4VoAE36g4hoI.jpg", GenreIDs: []int{12, 878}},
	{ID: 105, Title: "Back to the Future", Overview: "A teenager is accidentally sent thirty years into the past in a time machine.", VoteAverage: 8.3, ReleaseDate: "1985-07-03", PosterPath: "/fNOH9f1aA7XRTzl1sAOx9iF553Q.jpg", GenreIDs: []int{12, 35, 878}},
	{ID: 280, Title: "Terminator 2: Judgment Day", Overview: "A cyborg protects a boy from a more advanced machine sent to kill him.", VoteAverage: 8.1, ReleaseDate: "1991-07-03", PosterPath: "/5M0j0B18abtBI5gi2RhfjjurTqb.jpg", GenreIDs: []int{28, 53, 878}},
	{ID: 348, Title: "Alien", Overview: "The crew of a commercial spacecraft encounters a deadly lifeform.", VoteAverage: 8.1, ReleaseDate: "1979-05-25", PosterPath: "/vfrQk5IPloGg1v9Rzbh2Eg3VGyM.jpg", GenreIDs: []int{27, 878}},
	{ID: 78, Title: "Blade Runner", Overview: "A blade runner must pursue and terminate four replicants who stole a ship.", VoteAverage: 7.9, ReleaseDate: "1982-06-25", PosterPath: "/63N9uy8nd9j7Eog2axPQ8lbr3Wj.jpg", GenreIDs: []int{878, 18, 53}},
	{ID: 62, Title: "2001: A Space Odyssey", Overview: "Humanity finds a mysterious monolith and sets off on a quest with an intelligent computer.", VoteAverage: 8.1, ReleaseDate: "1968-04-02", PosterPath: "/ve72VxNqjGM69Uky4WTo2bK6rfq.jpg", GenreIDs: []int{878, 9648, 12}},
	{ID: 769, Title: "GoodFellas", Overview: "The rise and fall of a mob associate over three decades.", VoteAverage: 8.5, ReleaseDate: "1990-09-12", PosterPath: "/aKuFiU82s5ISJpGZp7YkIr3kCUd.jpg", GenreIDs: []int{18, 80}},
	{ID: 240, Title: "The Godfather Part II", Overview: "The early life of Vito Corleone, while his son Michael expands the family business.", VoteAverage: 9.0, ReleaseDate: "1974-12-20", PosterPath: "/hek3koDUyRQk7FIhPXsa6mT2Zc3.jpg", GenreIDs: []int{18, 80}},
	{ID: 807, Title: "Se7en", Overview: "Two detectives hunt a serial killer who uses the seven deadly sins as a motif.", VoteAverage: 8.4, ReleaseDate: "1995-09-22", PosterPath: "/6yoghtyTpznpBik8EngEmJskVUO.jpg", GenreIDs: []int{80, 9648, 53}},
	{ID: 274, Title: "The Silence of the Lambs", Overview: "A young FBI cadet seeks the help of an incarcerated killer to catch another.", VoteAverage: 8.3, ReleaseDate: "1991-02-14", PosterPath: "/uS9m8OBk1A8eM9I042bx8XXpqAq.jpg", GenreIDs: []int{80, 18, 53}},
	{ID: 857, Title: "Saving Private Ryan", Overview: "A group of soldiers goes behind enemy lines to retrieve a paratrooper.", VoteAverage: 8.2, ReleaseDate: "1998-07-24", PosterPath: "/uqx37cS8cpHg8U35f9U5IBlrCV3.jpg", GenreIDs: []int{18, 36, 10752}},
	{ID: 497, Title: "The Green Mile", Overview: "A death row guard forms a bond with an inmate who possesses a mysterious gift.", VoteAverage: 8.5, ReleaseDate: "1999-12-10", PosterPath: "/8VG8fDNiy50H4FedGwdSVUPoaJe.jpg", GenreIDs: []int{14, 18, 80}},
	{ID: 98, Title: "Gladiator", Overview: "A betrayed Roman general fights his way back as a gladiator to avenge his family.", VoteAverage: 8.2, ReleaseDate: "2000-05-04", PosterPath: "/ty8TGRuvJLPUmAR1H1nRIsgwvim.jpg", GenreIDs: []int{28, 18, 12}},
	{ID: 597, Title: "Titanic", Overview: "A seventeen-year-old aristocrat falls in love with a penniless artist aboard the Titanic.", VoteAverage: 7.9, ReleaseDate: "1997-11-18", PosterPath: "/9xjZS2rlVxm8SFx8kPC3aIGCOYQ.jpg", GenreIDs: []int{18, 10749}},
	{ID: 19995, Title: "Avatar", Overview: "A paraplegic Marine is dispatched to the moon Pandora on a unique mission.", VoteAverage: 7.6, ReleaseDate: "2009-12-15", PosterPath: "/kyeqWdyUXW608qlYkRqosgbbJyK.jpg", GenreIDs: []int{28, 12, 14, 878}},
	{ID: 24428, Title: "The Avengers", Overview: "Earth's mightiest heroes must come together to stop an alien invasion.", VoteAverage: 7.7, ReleaseDate: "2012-04-25", PosterPath: "/RYMX2wcKCBAr24UyPD7xwmjaTn.jpg", GenreIDs: []int{878, 28, 12}},
	{ID: 603692, Title: "John Wick: Chapter 4", Overview: "John Wick uncovers a path to defeating the High Table.", VoteAverage: 7.8, ReleaseDate: "2023-03-22", PosterPath: "/vZloFAK7NmvMGKE7VkF5UHaz0I.jpg", GenreIDs: []int{28, 53, 80}},
	{ID: 129, Title: "Spirited Away", Overview: "A girl wanders into a world ruled by gods and witches where humans are changed into beasts.", VoteAverage: 8.5, ReleaseDate: "2001-07-20", PosterPath: "/39wmItIWsg5sZMyRUHLkWBcuVCM.jpg", GenreIDs: []int{16, 10751, 14}},
	{ID: 128, Title: "Princess Mononoke", Overview: "A prince becomes involved in the struggle between forest gods and the humans who consume their resources.", VoteAverage: 8.3, ReleaseDate: "1997-07-12", PosterPath: "/cMYCDADoLKLbB83g4WnJegaZimC.jpg", GenreIDs: []int{16, 12, 14}},
	{ID: 372058, Title: "Your Name.", Overview: "Two strangers find themselves linked in a bizarre way, swapping bodies across distance.", VoteAverage: 8.5, ReleaseDate: "2016-08-26", PosterPath: "/q719jXXEzOoYaps6babgKnONONX.jpg", GenreIDs: []int{16, 18, 10749}},
	{ID: 194, Title: "Amélie", Overview: "A shy waitress decides to change the lives of those around her for the better.", VoteAverage: 7.9, ReleaseDate: "2001-04-25", PosterPath: "/f0uorE7K7ggHfr8r7pUTOHWkOlE.jpg", GenreIDs: []int{35, 10749}},
	{ID: 598, Title: "City of God", Overview: "Two boys growing up in a violent neighborhood of Rio de Janeiro take different paths.", VoteAverage: 8.4, ReleaseDate: "2002-08-30", PosterPath: "/k7eYdWvhYQyRQoU2TB2A2Xu2TfD.jpg", GenreIDs: []int{18, 80}},
	{ID: 670, Title: "Oldboy", Overview: "A man imprisoned for fifteen years is released and must find his captor in five days.", VoteAverage: 8.3, ReleaseDate: "2003-11-21", PosterPath: "/pWDtjs568ZfOTMbURQBYuT4Qxka.jpg", GenreIDs: []int{18, 53, 9648}},
	{ID: 1417, Title: "Pan's Labyrinth", Overview: "A girl escapes into an eerie fantasy world in post-war Spain.", VoteAverage: 7.8, ReleaseDate: "2006-10-11", PosterPath: "/67fdensS1jukNvrSLs2V1jeGDCr.jpg", GenreIDs: []int{14, 18, 10752}},
	{ID: 423, Title: "The Pianist", Overview: "A Polish Jewish musician struggles to survive the destruction of the Warsaw ghetto.", VoteAverage: 8.4, ReleaseDate: "2002-09-17", PosterPath: "/2hFvxCCWrTmCYwfy7yum0GKRi3Y.jpg", GenreIDs: []int{18, 10752}},
	{ID: 77338, Title: "The Intouchables", Overview: "A quadriplegic aristocrat hires a young man from the projects as his caregiver.", VoteAverage: 8.3, ReleaseDate: "2011-11-02", PosterPath: "/1QU7HKgsQbGpzsJbJK4pAVQV9F5.jpg", GenreIDs: []int{18, 35}},
	{ID: 10681, Title: "WALL·E", Overview: "A robot left to clean an abandoned Earth finds a new purpose when he meets EVE.", VoteAverage: 8.1, ReleaseDate: "2008-06-22", PosterPath: "/hbhFnRzzg6ZDmm8YAmxBnQpQIPh.jpg", GenreIDs: []int{16, 10751, 878}},
	{ID: 14160, Title: "Up", Overview: "An old man ties thousands of balloons to his house and flies to South America.", VoteAverage: 8.0, ReleaseDate: "2009-05-28", PosterPath: "/vpbaStTMt8qqXaEgnOR2EE4DNJk.jpg", GenreIDs: []int{16, 35, 10751, 12}},
	{ID: 862, Title: "Toy Story", Overview: "A cowboy doll is profoundly threatened when a new spaceman figure supplants him.", VoteAverage: 8.0, ReleaseDate: "1995-10-30", PosterPath: "/uXDfjJbdP4ijW5hWSBrPrlKpxab.jpg", GenreIDs: []int{16, 12, 10751, 35}},
	{ID: 244786, Title: "Whiplash", Overview: "A promising young drummer enrolls at a conservatory where a fearsome teacher pushes him to the brink.", VoteAverage: 8.4, ReleaseDate: "2014-10-10", PosterPath: "/7fn624j5lj3xTme2SgiLCeuedmO.jpg", GenreIDs: []int{18, 10402}},
	{ID: 313369, Title: "La La Land", Overview: "An aspiring actress and a jazz musician pursue their dreams in Los Angeles.", VoteAverage: 7.9, ReleaseDate: "2016-11-29", PosterPath: "/uDO8zWDhfWwoFdKS4fzkUJt0Rf0.jpg", GenreIDs: []int{35, 18, 10749, 10402}},
	{ID: 496243, Title: "Parasite", Overview: "A poor family schemes to become employed by a wealthy household.", VoteAverage: 8.5, ReleaseDate: "2019-05-30", PosterPath: "/7IiTTgloJzvGI1TAYymCfbfl3vT.jpg", GenreIDs: []int{35, 53, 18}},
	{ID: 475557, Title: "Joker", Overview: "A failed comedian descends into madness and becomes a criminal mastermind.", VoteAverage: 8.2, ReleaseDate: "2019-10-01", PosterPath: "/udDclJoHjfjb8Ekgsd4FDteOkCU.jpg", GenreIDs: []int{80, 53, 18}},
	{ID: 1422, Title: "The Departed", Overview: "An undercover cop and a mole in the police attempt to identify each other.", VoteAverage: 8.2, ReleaseDate: "2006-10-05", PosterPath: "/nT97ifVT2J1yMQmeq20Qblg61T.jpg", GenreIDs: []int{18, 53, 80}},
	{ID: 103, Title: "Taxi Driver", Overview: "A mentally unstable veteran works as a nighttime taxi driver in New York City.", VoteAverage: 8.2, ReleaseDate: "1976-02-09", PosterPath: "/ekstpH614fwDX8DUln1a2Opz0N8.jpg", GenreIDs: []int{80, 18}},
	{ID: 694, Title: "The Shining", Overview: "A family heads to an isolated hotel where a sinister presence drives the father to violence.", VoteAverage: 8.2, ReleaseDate: "1980-05-23", PosterPath: "/xazWoLealQwEgqZ89MLZklLZD3k.jpg", GenreIDs: []int{27, 53}},
}

// EmergencyPool returns the fixed fallback pool, trimmed to exactly the
// pool size. The list itself holds PoolSize unique titles.
func EmergencyPool() []model.ContentItem {
	items := make([]model.ContentItem, 0, model.PoolSize)
	for _, item := range emergencyItems {
		item.MediaType = model.MediaMovie
		item.Tier = model.TierPopular
		items = append(items, item)
		if len(items) == model.PoolSize {
			break
		}
	}
	return items
}
