// Package services holds domain rules that span aggregates and channels:
//
//   - ChannelRouter decides which channels learn about a committed order event
//   - SubscriptionPolicy decides which channels a principal's session may join
package services
