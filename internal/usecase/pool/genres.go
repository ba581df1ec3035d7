package usecase_pool

import "github.com/mkhalturin/filmatch/core/internal/model"

// Genre taxonomies differ between movies and series: a movie "Action" (28)
// does not exist for TV, where the closest bucket is "Action & Adventure"
// (10759). Both directions are fixed tables; ids without a counterpart
// pass through unchanged.
var movieToTV = map[int]int{
	28:    10759, // Action -> Action & Adventure
	12:    10759, // Adventure -> Action & Adventure
	878:   10765, // Science Fiction -> Sci-Fi & Fantasy
	14:    10765, // Fantasy -> Sci-Fi & Fantasy
	10752: 10768, // War -> War & Politics
	10751: 10762, // Family -> Kids
}

var tvToMovie = map[int]int{
	10759: 28,    // Action & Adventure -> Action
	10765: 878,   // Sci-Fi & Fantasy -> Science Fiction
	10768: 10752, // War & Politics -> War
	10762: 10751, // Kids -> Family
	10766: 18,    // Soap -> Drama
}

// RemapGenres translates genre ids to the taxonomy of the target media
// type, deduplicating ids that collapse into the same bucket.
func RemapGenres(ids []int, target model.MediaType) []int {
	table := movieToTV
	if target == model.MediaMovie {
		table = tvToMovie
	}

	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		mapped, ok := table[id]
		if !ok {
			mapped = id
		}
		if _, dup := seen[mapped]; dup {
			continue
		}
		seen[mapped] = struct{}{}
		out = append(out, mapped)
	}
	return out
}
