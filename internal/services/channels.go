package services

// Channel is one live TV entry in the static registry. A channel carries up
// to six source kinds; which ones apply depends on which fields are set.
type Channel struct {
	ID        string
	Name      string
	Title     string
	Poster    string
	Genres    []string
	URL       string
	ExtraURLs []string
	OkruID    string
	SkyID     string
	VaryName  string
	DLHDNum   string
}

// tvChannels is the registry backing the TV catalog. Entries keep their
// declaration order in catalog responses.
var tvChannels = []Channel{
	{
		ID:      "rai1",
		Name:    "Rai 1",
		Title:   "Rai 1",
		Poster:  "https://upload.wikimedia.org/wikipedia/commons/thumb/9/90/Rai_1_-_Logo_2016.svg/512px-Rai_1_-_Logo_2016.svg.png",
		Genres:  []string{"Rai"},
		URL:     "https://mediapolis.rai.it/relinker/relinkerServlet.htm?cont=2606803",
		SkyID:   "rai1",
		DLHDNum: "538",
	},
	{
		ID:      "rai2",
		Name:    "Rai 2",
		Title:   "Rai 2",
		Poster:  "https://upload.wikimedia.org/wikipedia/commons/thumb/6/63/Rai_2_-_Logo_2016.svg/512px-Rai_2_-_Logo_2016.svg.png",
		Genres:  []string{"Rai"},
		URL:     "https://mediapolis.rai.it/relinker/relinkerServlet.htm?cont=308718",
		SkyID:   "rai2",
		DLHDNum: "539",
	},
	{
		ID:      "rai3",
		Name:    "Rai 3",
		Title:   "Rai 3",
		Poster:  "https://upload.wikimedia.org/wikipedia/commons/thumb/b/b7/Rai_3_-_Logo_2016.svg/512px-Rai_3_-_Logo_2016.svg.png",
		Genres:  []string{"Rai"},
		URL:     "https://mediapolis.rai.it/relinker/relinkerServlet.htm?cont=308709",
		SkyID:   "rai3",
		DLHDNum: "540",
	},
	{
		ID:       "canale5",
		Name:     "Canale 5",
		Title:    "Canale 5",
		Poster:   "https://upload.wikimedia.org/wikipedia/commons/thumb/0/0a/Canale_5_logo_2018.svg/512px-Canale_5_logo_2018.svg.png",
		Genres:   []string{"Mediaset"},
		VaryName: "canale-5",
		DLHDNum:  "541",
	},
	{
		ID:       "italia1",
		Name:     "Italia 1",
		Title:    "Italia 1",
		Poster:   "https://upload.wikimedia.org/wikipedia/commons/thumb/9/91/Italia_1_-_2017_logo.svg/512px-Italia_1_-_2017_logo.svg.png",
		Genres:   []string{"Mediaset"},
		VaryName: "italia-1",
		DLHDNum:  "542",
	},
	{
		ID:       "rete4",
		Name:     "Rete 4",
		Title:    "Rete 4",
		Poster:   "https://upload.wikimedia.org/wikipedia/commons/thumb/c/cd/Rete_4_logo_2018.svg/512px-Rete_4_logo_2018.svg.png",
		Genres:   []string{"Mediaset"},
		VaryName: "rete-4",
		DLHDNum:  "543",
	},
	{
		ID:      "la7",
		Name:    "La7",
		Title:   "La7",
		Poster:  "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a7/La7_logo.svg/512px-La7_logo.svg.png",
		Genres:  []string{"La7"},
		URL:     "https://d15umi5iaezxgx.cloudfront.net/LA7/CLN/HLS/Live.m3u8",
		DLHDNum: "544",
	},
	{
		ID:     "skytg24",
		Name:   "Sky TG24",
		Title:  "Sky TG24",
		Poster: "https://upload.wikimedia.org/wikipedia/commons/thumb/0/0e/Sky_TG24_logo_2021.svg/512px-Sky_TG24_logo_2021.svg.png",
		Genres: []string{"Sky"},
		URL:    "https://skynews3-plutolive-vo.akamaized.net/cdhlsskynewsitaly/1013/latest.m3u8",
		ExtraURLs: []string{
			"https://sky-veespo-it.akamaized.net/skytg24/master.m3u8",
		},
		SkyID: "skytg24",
	},
	{
		ID:     "euronews",
		Name:   "Euronews Italiano",
		Title:  "Euronews Italiano",
		Poster: "https://upload.wikimedia.org/wikipedia/commons/thumb/9/92/Euronews_2022.svg/512px-Euronews_2022.svg.png",
		Genres: []string{"Euronews"},
		URL:    "https://euronews-euronews-italian-2-it.samsung.wurl.tv/playlist.m3u8",
		ExtraURLs: []string{
			"https://rakuten-euronews-1-it.samsung.wurl.com/manifest/playlist.m3u8",
		},
	},
	{
		ID:     "sportitalia",
		Name:   "Sportitalia",
		Title:  "Sportitalia",
		Poster: "https://upload.wikimedia.org/wikipedia/it/thumb/9/9c/Sportitalia_logo.svg/512px-Sportitalia_logo.svg.png",
		Genres: []string{"Sportitalia"},
		URL:    "https://stream1.sportitalia.com/hls/live/sportitalia/playlist.m3u8",
		OkruID: "3257467886229",
	},
	{
		ID:     "rainews24",
		Name:   "Rai News 24",
		Title:  "Rai News 24",
		Poster: "https://upload.wikimedia.org/wikipedia/commons/thumb/e/e9/Rai_News_24_-_Logo_2017.svg/512px-Rai_News_24_-_Logo_2017.svg.png",
		Genres: []string{"Rai"},
		URL:    "https://mediapolis.rai.it/relinker/relinkerServlet.htm?cont=1",
		SkyID:  "rainews24",
	},
	{
		ID:      "dmax",
		Name:    "DMAX",
		Title:   "DMAX",
		Poster:  "https://upload.wikimedia.org/wikipedia/commons/thumb/1/15/DMAX_Logo_2016.svg/512px-DMAX_Logo_2016.svg.png",
		Genres:  []string{"Warner Bros"},
		OkruID:  "4956396817135",
		DLHDNum: "555",
	},
}

// Channels returns the registry in declaration order.
func Channels() []Channel {
	return tvChannels
}

// ChannelByID looks a channel up by registry ID.
func ChannelByID(id string) (Channel, bool) {
	for _, ch := range tvChannels {
		if ch.ID == id {
			return ch, true
		}
	}
	return Channel{}, false
}

// ChannelsByGenre filters the registry by genre, keeping declaration order.
// An empty genre returns everything.
func ChannelsByGenre(genre string) []Channel {
	if genre == "" {
		return tvChannels
	}
	var out []Channel
	for _, ch := range tvChannels {
		for _, g := range ch.Genres {
			if g == genre {
				out = append(out, ch)
				break
			}
		}
	}
	return out
}
