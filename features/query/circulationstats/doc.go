// Package circulationstats implements the Circulation Stats query use case: the headline numbers
// of the desk and the ranking of the most reserved titles.
package circulationstats
