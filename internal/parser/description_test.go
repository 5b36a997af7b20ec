package parser

import "testing"

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain narrative untouched",
			text: "STARBUCKS COFFEE MUMBAI",
			want: "STARBUCKS COFFEE MUMBAI",
		},
		{
			name: "transaction id stripped",
			text: "txn123 STARBUCKS",
			want: "STARBUCKS",
		},
		{
			name: "order number stripped",
			text: "Amazon.in Order #403-1234567-8901234",
			want: "Amazon.in Order",
		},
		{
			name: "labelled date and amount stripped",
			text: "Date: 11 Dec 2025 STARBUCKS Amount: -420.00",
			want: "STARBUCKS",
		},
		{
			name: "slash date and rupee amount stripped",
			text: "12/11/2025 Uber Ride ₹1,250.00 debited",
			want: "Uber Ride",
		},
		{
			name: "balance clause stripped including its label",
			text: "Metro Card Recharge Available Balance → ₹17,170.50",
			want: "Metro Card Recharge",
		},
		{
			name: "bal shorthand stripped",
			text: "CHAI POINT Bal 9,500.00",
			want: "CHAI POINT",
		},
		{
			name: "description label stripped",
			text: "Description: SWIGGY ORDER",
			want: "SWIGGY ORDER",
		},
		{
			name: "asterisks become spaces",
			text: "Uber Ride * Airport Drop",
			want: "Uber Ride Airport Drop",
		},
		{
			name: "asterisk inside token splits it",
			text: "SWIGGY*INSTAMART",
			want: "SWIGGY INSTAMART",
		},
		{
			name: "trailing category tag stripped",
			text: "Big Bazaar Shopping",
			want: "Big Bazaar",
		},
		{
			name: "category word mid-text kept",
			text: "Shopping Mall Parking",
			want: "Shopping Mall Parking",
		},
		{
			name: "whitespace runs collapse",
			text: "DOMINO'S   PIZZA \n  ORDER",
			want: "DOMINO'S PIZZA ORDER",
		},
		{
			name: "empty input falls back",
			text: "",
			want: "Transaction",
		},
		{
			name: "only metadata falls back",
			text: "Date: 11 Dec 2025 Amount: 420.00 Bal 100.00",
			want: "Transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractDescription(tt.text)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
