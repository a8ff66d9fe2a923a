// Package order contains the Order aggregate and its lifecycle.
//
// An order is one of four types. Delivery and EnRoute orders are fulfilled by
// a rider and end Delivered; WalkIn orders are paid at the counter and end
// Completed; ClearBill orders settle a customer's balance and are born
// Completed. Any order that is not yet Delivered or Cancelled can be
// cancelled.
//
// The aggregate never touches the customer balance itself. It computes its
// amounts from the balance snapshot it was created with, and tells the caller
// how much to charge, pay or reverse.
package order
