// Package dataprocessing turns the raw extract workbooks into the merged
// daily table.
//
// # Architecture
//
// The package is organized into four stages, each a pure function of the
// previous one's output:
//
// 1. Loader: reads the hourly and daily extracts with excelize
// 2. AggregateDaily: per hydrological day averages of the hourly samples
// 3. MergeDaily: outer join of the averages with the daily table
// 4. BuildPeaks: the maximum hourly reading of each hydrological day
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger)
//	hourly, err := loader.LoadHourly(ctx, "hour.xlsx")
//	if err != nil {
//	    return err
//	}
//	merged := dataprocessing.MergeDaily(dataprocessing.AggregateDaily(hourly), nil)
//
// # Missing Values
//
// Cells that cannot be decoded become missing values. They are never
// replaced by zero and never drop their row.
package dataprocessing
