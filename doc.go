// Package ytresolve resolves YouTube video URLs to a title and one directly
// fetchable media URL.
//
// Resolution is a fixed pipeline:
//   - the video ID is derived from the URL
//   - the watch page is fetched once and its INNERTUBE_API_KEY scraped
//   - the InnerTube player endpoint is queried as the ANDROID client, whose
//     responses carry stream URLs that need no deciphering
//
// Among formats with a URL the tallest one wins.
package ytresolve
