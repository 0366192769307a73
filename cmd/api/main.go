// Command story-bias serves the story bias report web front end.
//
// Usage:
//
//	story-bias                 start the web server
//	story-bias serve           same as above
//	story-bias analyze <url>   analyze one story and print the report
//	story-bias version
package main

func main() {
	Execute()
}
